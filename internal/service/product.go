package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastopp/fastopp/internal/model"
	"github.com/fastopp/fastopp/internal/repository"
)

type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) ByID(id string) (*model.Product, error) {
	return s.productRepo.ByID(id)
}

func (s *ProductService) All() ([]*model.Product, error) {
	return s.productRepo.All()
}

func (s *ProductService) ByCategory(category string) ([]*model.Product, error) {
	return s.productRepo.ByCategory(category)
}

func (s *ProductService) Create(name, description string, price float64, category string, inStock bool) (*model.Product, error) {
	product := &model.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		InStock:     inStock,
		CreatedAt:   time.Now(),
	}

	err := s.productRepo.Create(product)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Update(product *model.Product) error {
	return s.productRepo.Update(product)
}

func (s *ProductService) Delete(id string) error {
	return s.productRepo.Delete(id)
}
