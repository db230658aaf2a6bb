package model

import (
	"time"
)

type Product struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	InStock     bool      `db:"in_stock" json:"in_stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
