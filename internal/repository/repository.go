// Package repository provides list, create and delete access to the record tables.
package repository

import (
	"context"

	"github.com/diewo77/agence-immo/internal/apperr"
	"gorm.io/gorm"
)

// Record is a row with an auto-incremented primary key.
type Record interface {
	GetID() uint
}

// Repository gives list, create and delete access to the table of T.
type Repository[T Record] struct {
	db *gorm.DB
}

func New[T Record](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// List returns every row in insertion order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return items, nil
}

// Create inserts item and returns its new id. Constraint failures come back
// as validation or conflict errors.
func (r *Repository[T]) Create(ctx context.Context, item *T) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(item).Error
	})
	if err != nil {
		return 0, apperr.FromDB(err)
	}
	return (*item).GetID(), nil
}

// Delete removes the row with the given id. Dependent rows go with it
// through the store's cascades.
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	var res *gorm.DB
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res = tx.Delete(new(T), id)
		return res.Error
	})
	if err != nil {
		return apperr.FromDB(err)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("not found")
	}
	return nil
}
