package repository

import (
	"context"
	"ebuy/internal/biddingerrors"
	"ebuy/internal/models"
	"encoding/json"
	"fmt"
	"sort"
)

const maxPageSize = 100

// Repository defines the storage interface for one entity type
type Repository[T models.Entity] interface {
	Single(ctx context.Context, key string, include ...string) (T, error)
	Query(ctx context.Context, predicate func(T) bool, include ...string) ([]T, error)
	All(ctx context.Context, page, pageSize int, include ...string) ([]T, error)
	Save(ctx context.Context, entity T) error
}

// Relation fills related data on a loaded entity
type Relation[T models.Entity] func(ctx context.Context, entity T) error

// Option configures a repository
type Option[T models.Entity] func(*relations[T])

// WithRelation registers a loader that callers can request by name
func WithRelation[T models.Entity](name string, load Relation[T]) Option[T] {
	return func(r *relations[T]) {
		r.loaders[name] = load
	}
}

type relations[T models.Entity] struct {
	loaders map[string]Relation[T]
}

func newRelations[T models.Entity](opts []Option[T]) relations[T] {
	r := relations[T]{loaders: make(map[string]Relation[T])}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// check fails fast on names nobody registered, before any I/O
func (r relations[T]) check(include []string) error {
	for _, name := range include {
		if _, ok := r.loaders[name]; !ok {
			return fmt.Errorf("load relation %q: %w", name, biddingerrors.ErrUnknownRelation)
		}
	}
	return nil
}

func (r relations[T]) load(ctx context.Context, entities []T, include []string) error {
	for _, name := range include {
		loader := r.loaders[name]
		for _, e := range entities {
			if err := loader(ctx, e); err != nil {
				return fmt.Errorf("load relation %q for %s: %w", name, e.EntityKey(), err)
			}
		}
	}
	return nil
}

func validatePage(page, pageSize int) (int, error) {
	if page < 0 || pageSize <= 0 {
		return 0, fmt.Errorf("page %d size %d: %w", page, pageSize, biddingerrors.ErrInvalidPage)
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, nil
}

// pageBounds returns the slice bounds of a page over n sorted keys
func pageBounds(n, page, pageSize int) (int, int) {
	start := page * pageSize
	if start > n {
		start = n
	}
	end := start + pageSize
	if end > n {
		end = n
	}
	return start, end
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func encode[T models.Entity](entity T) ([]byte, error) {
	return json.Marshal(entity)
}

func decode[T models.Entity](data []byte) (T, error) {
	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		return entity, fmt.Errorf("decode entity: %w", err)
	}
	return entity, nil
}

// nextVersion runs the optimistic check for versioned entities: the stored
// version must match the version the caller loaded. It bumps the entity's
// version on success; unversioned entities always pass.
func nextVersion[T models.Entity](entity T, stored int64) error {
	v, ok := any(entity).(models.Versioned)
	if !ok {
		return nil
	}
	if v.EntityVersion() != stored {
		return fmt.Errorf("save %s: loaded version %d, stored version %d: %w",
			entity.EntityKey(), v.EntityVersion(), stored, biddingerrors.ErrVersionConflict)
	}
	v.SetEntityVersion(stored + 1)
	return nil
}

func storedVersion[T models.Entity](data []byte) (int64, error) {
	if data == nil {
		return 0, nil
	}
	existing, err := decode[T](data)
	if err != nil {
		return 0, err
	}
	if v, ok := any(existing).(models.Versioned); ok {
		return v.EntityVersion(), nil
	}
	return 0, nil
}
