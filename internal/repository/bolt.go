package repository

import (
	"context"
	"ebuy/internal/biddingerrors"
	"ebuy/internal/models"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

// BoltDB is a single BoltDB file shared by all entity repositories
type BoltDB struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file at path
func OpenBolt(path string) (*BoltDB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	return &BoltDB{db: db}, nil
}

// Close releases the database file lock
func (b *BoltDB) Close() error {
	return b.db.Close()
}

// BoltRepo stores one entity type in its own bucket. Keys iterate in byte
// order, which gives All and Query the same ordering as MemoryRepo.
type BoltRepo[T models.Entity] struct {
	db        *bolt.DB
	bucket    []byte
	relations relations[T]
}

// NewBoltRepo ensures the bucket exists and returns a repository over it
func NewBoltRepo[T models.Entity](b *BoltDB, bucket string, opts ...Option[T]) (*BoltRepo[T], error) {
	err := b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
	}

	return &BoltRepo[T]{
		db:        b.db,
		bucket:    []byte(bucket),
		relations: newRelations(opts),
	}, nil
}

func (r *BoltRepo[T]) Single(ctx context.Context, key string, include ...string) (T, error) {
	var entity T
	if err := r.relations.check(include); err != nil {
		return entity, err
	}

	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(r.bucket).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("get %q: %w", key, biddingerrors.ErrNotFound)
		}
		var err error
		entity, err = decode[T](v)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if err := r.relations.load(ctx, []T{entity}, include); err != nil {
		var zero T
		return zero, err
	}
	return entity, nil
}

func (r *BoltRepo[T]) Query(ctx context.Context, predicate func(T) bool, include ...string) ([]T, error) {
	if err := r.relations.check(include); err != nil {
		return nil, err
	}

	result := make([]T, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).ForEach(func(k, v []byte) error {
			entity, err := decode[T](v)
			if err != nil {
				return fmt.Errorf("query %q: %w", k, err)
			}
			if predicate == nil || predicate(entity) {
				result = append(result, entity)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if err := r.relations.load(ctx, result, include); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BoltRepo[T]) All(ctx context.Context, page, pageSize int, include ...string) ([]T, error) {
	pageSize, err := validatePage(page, pageSize)
	if err != nil {
		return nil, err
	}
	if err := r.relations.check(include); err != nil {
		return nil, err
	}

	result := make([]T, 0, pageSize)
	err = r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(r.bucket).Cursor()
		skip := page * pageSize
		for k, v := c.First(); k != nil && len(result) < pageSize; k, v = c.Next() {
			if skip > 0 {
				skip--
				continue
			}
			entity, err := decode[T](v)
			if err != nil {
				return fmt.Errorf("list %q: %w", k, err)
			}
			result = append(result, entity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.relations.load(ctx, result, include); err != nil {
		return nil, err
	}
	return result, nil
}

// Save writes the entity inside a single update transaction so the version
// check and the write cannot interleave with another writer
func (r *BoltRepo[T]) Save(ctx context.Context, entity T) error {
	key := entity.EntityKey()
	if key == "" {
		return fmt.Errorf("save: %w", biddingerrors.ErrEmptyKey)
	}

	var stored int64
	bumped := false
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)

		var err error
		stored, err = storedVersion[T](b.Get([]byte(key)))
		if err != nil {
			return fmt.Errorf("save %q: %w", key, err)
		}
		if err := nextVersion(entity, stored); err != nil {
			return err
		}
		bumped = true

		data, err := encode(entity)
		if err != nil {
			return fmt.Errorf("save %q: %w", key, err)
		}
		return b.Put([]byte(key), data)
	})
	if err != nil && bumped {
		restoreVersion(entity, stored)
	}
	return err
}
