package handlers

import (
	"encoding/json"
	"net/http"

	"product-catalog/application/services"
	"product-catalog/domain/core/entities"
	"product-catalog/pkg/common"
	apperrors "product-catalog/pkg/errors"
	"product-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CreateProductRequest represents the request body for creating a product.
// Price and Stock are pointers so that an explicit 0 counts as present.
type CreateProductRequest struct {
	Name        string   `json:"Name" validate:"required"`
	Description string   `json:"Description,omitempty"`
	Price       *float64 `json:"Price" validate:"required"`
	Category    string   `json:"Category" validate:"required"`
	Tags        []string `json:"Tags,omitempty"`
	Stock       *int     `json:"Stock" validate:"required,gte=0"`
}

// CreateProductResponse represents the response for creating a product
type CreateProductResponse struct {
	Message string            `json:"message"`
	Product *entities.Product `json:"product"`
}

// MessageResponse is the body of update and delete responses
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if missing := utils.MissingFields(req); len(missing) > 0 {
		h.logger.Debug("Create request is missing fields", zap.Strings("fields", missing))
		h.respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := h.service.NewProduct(entities.NewProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Tags:        req.Tags,
		Stock:       *req.Stock,
	})

	if err := h.service.CreateProduct(r.Context(), product); err != nil {
		h.handleError(w, err, "Failed to create product",
			zap.String("productId", product.ProductID),
		)
		return
	}

	h.respondJSON(w, http.StatusCreated, CreateProductResponse{
		Message: "Product created",
		Product: product,
	})
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := common.ExtractPaginationParams(r)

	products, err := h.service.ListProducts(r.Context(), page.Limit, page.Offset)
	if err != nil {
		h.handleError(w, err, "Failed to fetch products",
			zap.Int("limit", page.Limit),
			zap.Int("offset", page.Offset),
		)
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.handleError(w, err, "Failed to retrieve product", zap.String("productId", productID))
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /products/{productId}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var patch entities.ProductPatch
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateProduct(r.Context(), productID, patch); err != nil {
		if apperrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.handleError(w, err, "Failed to update product", zap.String("productId", productID))
		return
	}

	h.respondJSON(w, http.StatusOK, MessageResponse{Message: "Product updated"})
}

// DeleteProduct handles DELETE /products/{productId}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		h.handleError(w, err, "Failed to delete product", zap.String("productId", productID))
		return
	}

	h.respondJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted"})
}

// handleError maps a service error onto a response. Client errors carry
// their own message; anything else is logged and answered with fallback.
func (h *ProductHandler) handleError(w http.ResponseWriter, err error, fallback string, fields ...zap.Field) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(fallback, append(fields, zap.Error(err))...)
		h.respondError(w, status, fallback)
		return
	}

	message := fallback
	if appErr := apperrors.GetAppError(err); appErr != nil {
		message = appErr.Message
	}
	h.logger.Info("Request rejected",
		append(fields, zap.Int("status", status), zap.String("reason", message))...,
	)
	h.respondError(w, status, message)
}

// Helper methods

func (h *ProductHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *ProductHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{Error: message})
}
