// Package recordstore resolves employee identifiers to their raw payroll
// records. The backing data is loaded once at process start; lookups are
// O(1) against the in-memory snapshot.
package recordstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AnuragRai017/paybot/internal/config"
	"github.com/AnuragRai017/paybot/internal/model"
)

type Provider interface {
	// Get returns errors.ErrNotFound for unknown identifiers.
	Get(ctx context.Context, employeeID string) (*model.EmployeeRecord, error)
	IDs(ctx context.Context) ([]string, error)
}

// New builds the provider selected by config. db may be nil for the json
// store.
func New(cfg config.RecordStoreConfig, db *sql.DB) (Provider, error) {
	switch cfg.Type {
	case "json":
		return NewJSONStore(cfg.Path)
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres record store requires a database")
		}
		return NewPostgresStore(db)
	default:
		return nil, fmt.Errorf("unsupported record store type: %s", cfg.Type)
	}
}
