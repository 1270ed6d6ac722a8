package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/craftplan-go/internal/infrastructure/database"
)

// NewTestDB creates an in-memory SQLite database with the run-history
// schema migrated
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	return db
}
