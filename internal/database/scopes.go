package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/disaster-relief-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NewestFirst orders by the given timestamp column descending, breaking ties by id
func NewestFirst(table, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(fmt.Sprintf("%s.%s DESC", table, column)).Order(fmt.Sprintf("%s.id DESC", table))
	}
}
