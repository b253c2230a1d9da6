package repository

import (
	"context"

	"commerce-api/internal/domain/entity"
)

// FeeSessionRepository keeps the fees of a shopper session between requests
type FeeSessionRepository interface {
	// Load returns an empty map when the session holds no fees
	Load(ctx context.Context, sessionID string) (map[string]entity.Fee, error)

	// Put stores one fee without touching the other fees of the session and
	// returns every fee the session holds afterwards. Concurrent puts to the
	// same session never lose each other's fees.
	Put(ctx context.Context, sessionID, feeID string, fee entity.Fee) (map[string]entity.Fee, error)

	Clear(ctx context.Context, sessionID string) error
}
