package cart

import (
	"context"
	"errors"
)

// Storage persists a session's cart between visits.
type Storage interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNotFound = errors.New("cart not found")
