package repository

import (
	"context"

	"commerce-api/internal/domain/entity"
)

// Fields maps column names to values for insert and update
type Fields map[string]interface{}

type APIRequestLogRepository interface {
	// FindByID returns nil without error when no row matches
	FindByID(ctx context.Context, id int64) (*entity.APIRequestLog, error)

	// FindAll returns the newest logs first
	FindAll(ctx context.Context, limit int) ([]entity.APIRequestLog, error)

	// Insert stores a new row and returns its id
	Insert(ctx context.Context, fields Fields) (int64, error)

	// Update reports whether a row with the id was changed
	Update(ctx context.Context, id int64, fields Fields) (bool, error)

	// Delete reports whether a row with the id was removed
	Delete(ctx context.Context, id int64) (bool, error)
}
