package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/transport"
)

// Entity is the capability a persisted type needs to flow through the
// generic repository: a numeric identity and an optimistic-lock version.
type Entity interface {
	PrimaryKey() uint
	RowVersion() int
}

type Repository[T Entity] struct {
	db *gorm.DB
}

func New[T Entity](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// Get fetches by primary key. id 0 is never assigned, so it short-circuits
// to ErrNotFound without a round-trip.
func (r *Repository[T]) Get(ctx context.Context, id uint) (T, error) {
	var entity T
	if id == 0 {
		return entity, errs.ErrNotFound
	}
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity, errs.ErrNotFound
		}
		return entity, err
	}
	return entity, nil
}

// GetAll is a full scan; intended for small reference tables only. Anything
// user-facing goes through PagedAll.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *Repository[T]) Add(ctx context.Context, entity T) (T, error) {
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return entity, err
	}
	return entity, nil
}

// Update writes every column of entity, guarded by its loaded version. The
// version bump and the column writes run in one transaction; the first
// statement's row lock keeps a racing writer out until commit.
func (r *Repository[T]) Update(ctx context.Context, entity T) error {
	if entity.PrimaryKey() == 0 {
		return errs.ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity).
			Where("id = ? AND version = ?", entity.PrimaryKey(), entity.RowVersion()).
			UpdateColumn("version", gorm.Expr("version + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(new(T)).Where("id = ?", entity.PrimaryKey()).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return errs.ErrNotFound
			}
			return errs.ErrConcurrencyConflict
		}
		return tx.Model(&entity).
			Select("*").Omit("id", "version").
			Updates(entity).Error
	})
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// PagedAll counts every row of T, then fetches one page projected straight
// into R. Scanning into R makes GORM select only R's columns, so full
// entities are never materialized. Methods cannot add type parameters, hence
// the package-level function.
func PagedAll[T Entity, R any](ctx context.Context, r *Repository[T], q transport.QueryParameters) (*transport.PagedResult[R], error) {
	q.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]R, 0, q.PageSize)
	if err := r.db.WithContext(ctx).Model(new(T)).
		Order("id ASC").
		Offset(q.StartIndex).
		Limit(q.PageSize).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &transport.PagedResult[R]{
		TotalCount:   total,
		PageNumber:   q.PageNumber,
		RecordNumber: q.PageSize,
		Items:        items,
	}, nil
}

// AddMapped persists a creation-shaped input and returns a result shape, so
// create endpoints never expose the entity type. Both directions are
// explicit functions.
func AddMapped[T Entity, S, R any](ctx context.Context, r *Repository[T], src S, toEntity func(S) T, toResult func(T) R) (R, error) {
	entity, err := r.Add(ctx, toEntity(src))
	if err != nil {
		var zero R
		return zero, err
	}
	return toResult(entity), nil
}

// UpdateMapped loads the entity at id, applies only the fields the patch
// carries, and writes it back under the loaded version.
func UpdateMapped[T Entity, S any](ctx context.Context, r *Repository[T], id uint, src S, apply func(*T, S)) error {
	entity, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	apply(&entity, src)
	return r.Update(ctx, entity)
}
