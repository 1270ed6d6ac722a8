package shared

import (
	"fmt"
	"time"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Planning-related errors

type PlanningError struct {
	*DomainError
}

func NewPlanningError(message string) *PlanningError {
	return &PlanningError{DomainError: &DomainError{Message: message}}
}

// NoPlanFoundError signals that a bounded search terminated without
// reaching the goal. The engine cannot distinguish an exhausted budget
// from an unreachable goal; both surface as this error.
type NoPlanFoundError struct {
	*PlanningError
	Elapsed time.Duration
}

func NewNoPlanFoundError(elapsed time.Duration) *NoPlanFoundError {
	return &NoPlanFoundError{
		PlanningError: NewPlanningError(
			fmt.Sprintf("no plan found within budget (searched for %s)", elapsed.Round(time.Millisecond))),
		Elapsed: elapsed,
	}
}

// Catalog-related errors

type CatalogError struct {
	*DomainError
}

func NewCatalogError(message string) *CatalogError {
	return &CatalogError{DomainError: &DomainError{Message: message}}
}

// UnknownItemError indicates a reference to an item outside the fixed universe
type UnknownItemError struct {
	*CatalogError
	Item string
}

func NewUnknownItemError(item string) *UnknownItemError {
	return &UnknownItemError{
		CatalogError: NewCatalogError(fmt.Sprintf("unknown item: %s", item)),
		Item:         item,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
