package cart

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is the mutation API over a session's persisted cart. Every
// mutation reads the stored cart, applies the change and writes the
// whole cart back. Mutations are total: out-of-range quantities are
// clamped, absent ids are no-ops.
type Store struct {
	storage Storage
	sfg     singleflight.Group // Collapses concurrent reads per session
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Get returns the session's cart, rehydrated from storage. A session
// with no stored cart gets an empty one.
func (s *Store) Get(ctx context.Context, sessionID string) (*Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cart, err := s.storage.Load(ctx, sessionID)
		if errors.Is(err, ErrNotFound) {
			return &Cart{}, nil
		}
		if err != nil {
			return nil, err
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cart), nil
}

func (s *Store) AddItem(ctx context.Context, sessionID string, item Line) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Add(item)
	})
}

func (s *Store) RemoveItem(ctx context.Context, sessionID, productID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Remove(productID)
	})
}

func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID string, qty int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.SetQuantity(productID, qty)
	})
}

func (s *Store) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Clear()
	})
}

func (s *Store) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fn(cart)
	cart.UpdatedAt = time.Now()

	if err := s.storage.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
