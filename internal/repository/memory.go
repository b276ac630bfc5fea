package repository

import (
	"context"
	"ebuy/internal/biddingerrors"
	"ebuy/internal/models"
	"fmt"
	"sync"
)

// MemoryRepo is a concurrency-safe in-memory implementation of Repository.
// Entities are kept encoded so every read hands out an independent copy.
type MemoryRepo[T models.Entity] struct {
	mu        sync.RWMutex
	entities  map[string][]byte // key: entity key -> value: encoded entity
	relations relations[T]
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo[T models.Entity](opts ...Option[T]) *MemoryRepo[T] {
	return &MemoryRepo[T]{
		entities:  make(map[string][]byte),
		relations: newRelations(opts),
	}
}

// Single returns the entity stored under key
func (r *MemoryRepo[T]) Single(ctx context.Context, key string, include ...string) (T, error) {
	var zero T
	if err := r.relations.check(include); err != nil {
		return zero, err
	}

	r.mu.RLock()
	data, ok := r.entities[key]
	r.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("get %q: %w", key, biddingerrors.ErrNotFound)
	}

	entity, err := decode[T](data)
	if err != nil {
		return zero, fmt.Errorf("get %q: %w", key, err)
	}
	if err := r.relations.load(ctx, []T{entity}, include); err != nil {
		return zero, err
	}
	return entity, nil
}

// Query returns all entities matching predicate, in key order
func (r *MemoryRepo[T]) Query(ctx context.Context, predicate func(T) bool, include ...string) ([]T, error) {
	if err := r.relations.check(include); err != nil {
		return nil, err
	}

	r.mu.RLock()
	keys := sortedKeys(r.entities)
	encoded := make([][]byte, 0, len(keys))
	for _, k := range keys {
		encoded = append(encoded, r.entities[k])
	}
	r.mu.RUnlock()

	result := make([]T, 0)
	for _, data := range encoded {
		entity, err := decode[T](data)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		if predicate == nil || predicate(entity) {
			result = append(result, entity)
		}
	}

	if err := r.relations.load(ctx, result, include); err != nil {
		return nil, err
	}
	return result, nil
}

// All returns one page of entities in key order; page is zero-based
func (r *MemoryRepo[T]) All(ctx context.Context, page, pageSize int, include ...string) ([]T, error) {
	pageSize, err := validatePage(page, pageSize)
	if err != nil {
		return nil, err
	}
	if err := r.relations.check(include); err != nil {
		return nil, err
	}

	r.mu.RLock()
	keys := sortedKeys(r.entities)
	start, end := pageBounds(len(keys), page, pageSize)
	encoded := make([][]byte, 0, end-start)
	for _, k := range keys[start:end] {
		encoded = append(encoded, r.entities[k])
	}
	r.mu.RUnlock()

	result := make([]T, 0, len(encoded))
	for _, data := range encoded {
		entity, err := decode[T](data)
		if err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		result = append(result, entity)
	}

	if err := r.relations.load(ctx, result, include); err != nil {
		return nil, err
	}
	return result, nil
}

// Save inserts or replaces an entity, enforcing the version check for
// versioned entities
func (r *MemoryRepo[T]) Save(ctx context.Context, entity T) error {
	key := entity.EntityKey()
	if key == "" {
		return fmt.Errorf("save: %w", biddingerrors.ErrEmptyKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := storedVersion[T](r.entities[key])
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	if err := nextVersion(entity, stored); err != nil {
		return err
	}

	data, err := encode(entity)
	if err != nil {
		restoreVersion(entity, stored)
		return fmt.Errorf("save %q: %w", key, err)
	}
	r.entities[key] = data
	return nil
}

// Len returns the number of stored entities
func (r *MemoryRepo[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

func restoreVersion[T models.Entity](entity T, v int64) {
	if ve, ok := any(entity).(models.Versioned); ok {
		ve.SetEntityVersion(v)
	}
}
