// Package docstore persists whole JSON documents by name.
//
// Every mutation is a read-modify-write of the entire document with no
// locking across requests: concurrent writers race and the last save wins.
// A document that is missing or cannot be decoded is replaced by its seed,
// which is written back before being returned.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned by a Backend when no document exists under a name
var ErrNotFound = errors.New("document not found")

// Backend stores raw document bytes by name
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// Document is a typed handle on one named document
type Document[T any] struct {
	name    string
	backend Backend
	seed    func() T
	logger  zerolog.Logger
}

// New creates a document handle. seed must return a fresh value on every call.
func New[T any](backend Backend, name string, seed func() T, logger zerolog.Logger) *Document[T] {
	return &Document[T]{
		name:    name,
		backend: backend,
		seed:    seed,
		logger:  logger.With().Str("document", name).Logger(),
	}
}

// Name returns the document name
func (d *Document[T]) Name() string {
	return d.name
}

// Load reads and decodes the document, falling back to the persisted seed
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	var zero T

	raw, err := d.backend.Read(ctx, d.name)
	if errors.Is(err, ErrNotFound) {
		d.logger.Info().Msg("Document missing, writing seed")
		return d.reseed(ctx)
	}
	if err != nil {
		return zero, fmt.Errorf("read document %s: %w", d.name, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		d.logger.Warn().Msg("Document empty, writing seed")
		return d.reseed(ctx)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		d.logger.Warn().Err(err).Msg("Document corrupt, writing seed")
		return d.reseed(ctx)
	}
	return value, nil
}

// Save encodes and writes the whole document
func (d *Document[T]) Save(ctx context.Context, value T) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.name, err)
	}
	if err := d.backend.Write(ctx, d.name, data); err != nil {
		return fmt.Errorf("write document %s: %w", d.name, err)
	}
	return nil
}

// Update loads the document, applies fn and saves the result. Nothing is
// saved when fn returns an error.
func (d *Document[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	current, err := d.Load(ctx)
	if err != nil {
		return current, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := d.Save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

func (d *Document[T]) reseed(ctx context.Context) (T, error) {
	value := d.seed()
	if err := d.Save(ctx, value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Ensure loads the document, persisting its seed if needed
func (d *Document[T]) Ensure(ctx context.Context) error {
	_, err := d.Load(ctx)
	return err
}
