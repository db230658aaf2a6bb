package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fastopp/fastopp/internal/model"
	"github.com/fastopp/fastopp/internal/repository"
	"github.com/fastopp/fastopp/internal/service"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var products []*model.Product
	var err error
	if category != "" {
		products, err = h.productService.ByCategory(category)
	} else {
		products, err = h.productService.All()
	}
	if err != nil {
		slog.Error("failed to list products", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"in_stock"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Price < 0 {
		writeError(w, http.StatusBadRequest, "name is required and price must be non-negative")
		return
	}

	product, err := h.productService.Create(req.Name, req.Description, req.Price, req.Category, req.InStock)
	if err != nil {
		slog.Error("failed to create product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.ByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("failed to load product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	var req productRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.InStock = req.InStock

	err = h.productService.Update(product)
	if err != nil {
		slog.Error("failed to update product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.productService.Delete(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("failed to delete product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
