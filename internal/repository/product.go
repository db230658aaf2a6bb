package repository

import (
	"database/sql"
	"errors"

	"github.com/fastopp/fastopp/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type ProductRepository interface {
	Create(product *model.Product) error
	ByID(id string) (*model.Product, error)
	All() ([]*model.Product, error)
	ByCategory(category string) ([]*model.Product, error)
	Update(product *model.Product) error
	Delete(id string) error
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	query := `INSERT INTO products (id, name, description, price, category, in_stock, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, product.ID, product.Name, product.Description, product.Price, product.Category, product.InStock, product.CreatedAt)
	return err
}

func (r *productRepository) ByID(id string) (*model.Product, error) {
	product := &model.Product{}
	query := `SELECT * FROM products WHERE id = $1`

	err := r.db.Get(product, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}

	return product, err
}

func (r *productRepository) All() ([]*model.Product, error) {
	var products []*model.Product
	query := `SELECT * FROM products ORDER BY created_at`

	err := r.db.Select(&products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ByCategory(category string) ([]*model.Product, error) {
	var products []*model.Product
	query := `SELECT * FROM products WHERE category = $1 ORDER BY created_at`

	err := r.db.Select(&products, query, category)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	query := `UPDATE products SET name = $1, description = $2, price = $3, category = $4, in_stock = $5 WHERE id = $6`

	result, err := r.db.Exec(query, product.Name, product.Description, product.Price, product.Category, product.InStock, product.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Delete(id string) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProductNotFound
	}

	return nil
}
