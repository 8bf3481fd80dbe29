package storage

import (
	"context"
	"errors"
	"fmt"
)

// CompositeBackend is a write-through cache: reads come from cache, writes
// go to both, and persistent is the source of truth for ids.
type CompositeBackend struct {
	cache      Storage
	persistent Storage
}

// NewCompositeBackend loads every persistent note into cache.
func NewCompositeBackend(ctx context.Context, cache, persistent Storage) (*CompositeBackend, error) {
	c := &CompositeBackend{cache: cache, persistent: persistent}
	notes, err := persistent.GetAllNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("populating cache: %w", err)
	}
	for _, n := range notes {
		if err := importNote(ctx, cache, n); err != nil {
			return nil, fmt.Errorf("populating cache: %w", err)
		}
	}
	return c, nil
}

func (c *CompositeBackend) GetAllNotes(ctx context.Context) ([]*Note, error) {
	return c.cache.GetAllNotes(ctx)
}

// GetNote falls back to persistent storage on a cache miss and remembers
// what it found.
func (c *CompositeBackend) GetNote(ctx context.Context, id string) (*Note, error) {
	n, err := c.cache.GetNote(ctx, id)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	n, err = c.persistent.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := importNote(ctx, c.cache, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (c *CompositeBackend) SaveNote(ctx context.Context, n *Note) error {
	if err := c.persistent.SaveNote(ctx, n); err != nil {
		return err
	}
	return importNote(ctx, c.cache, n)
}

func (c *CompositeBackend) ImportNote(ctx context.Context, n *Note) error {
	if err := importNote(ctx, c.persistent, n); err != nil {
		return err
	}
	return importNote(ctx, c.cache, n)
}

func (c *CompositeBackend) CreateNote(ctx context.Context) (*Note, error) {
	n, err := c.persistent.CreateNote(ctx)
	if err != nil {
		return nil, err
	}
	if err := importNote(ctx, c.cache, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (c *CompositeBackend) DeleteNote(ctx context.Context, id string) error {
	if err := c.cache.DeleteNote(ctx, id); err != nil {
		return err
	}
	return c.persistent.DeleteNote(ctx, id)
}

func (c *CompositeBackend) Close() error {
	return errors.Join(c.cache.Close(), c.persistent.Close())
}
