package entities

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"product-catalog/pkg/utils"

	"github.com/google/uuid"
)

// Product is a sellable item. Category and every tag must reference an
// existing taxonomy entry at the time the product is written.
type Product struct {
	ProductID   string    `json:"ProductId"`
	Name        string    `json:"Name"`
	Description string    `json:"Description,omitempty"`
	Price       float64   `json:"Price"`
	Category    string    `json:"Category"`
	Tags        []string  `json:"Tags,omitempty"`
	Stock       int       `json:"Stock"`
	CreatedAt   time.Time `json:"CreatedAt"`
	UpdatedAt   time.Time `json:"UpdatedAt"`
}

// MarshalJSON writes timestamps in the ISO millisecond form used in storage
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"CreatedAt"`
		UpdatedAt string `json:"UpdatedAt"`
	}{
		plain:     plain(p),
		CreatedAt: utils.FormatISO(p.CreatedAt),
		UpdatedAt: utils.FormatISO(p.UpdatedAt),
	})
}

// NewProductInput carries the client supplied attributes of a new product
type NewProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Tags        []string
	Stock       int
}

// NewProductID generates a fresh product identifier
func NewProductID() string {
	return uuid.New().String()
}

// NewProduct builds a product with a generated id. CreatedAt and UpdatedAt
// are both set to now.
func NewProduct(in NewProductInput, now time.Time) *Product {
	return &Product{
		ProductID:   NewProductID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Tags:        in.Tags,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ProductPatch lists the attributes a partial update may change. A nil field
// is left untouched; a non-nil field is written even when it holds a zero
// value, so Stock: 0 clears the stock.
type ProductPatch struct {
	Name        *string   `json:"Name,omitempty"`
	Description *string   `json:"Description,omitempty"`
	Price       *float64  `json:"Price,omitempty"`
	Category    *string   `json:"Category,omitempty"`
	Tags        *[]string `json:"Tags,omitempty"`
	Stock       *int      `json:"Stock,omitempty"`

	// UpdatedAt is set by the service, never by clients
	UpdatedAt *time.Time `json:"-"`
}

var (
	// ErrEmptyPatch is returned when a patch sets no attribute
	ErrEmptyPatch = errors.New("no fields to update")
	// ErrEmptyName is returned when a patch clears the product name
	ErrEmptyName = errors.New("Name cannot be empty")
	// ErrNegativeStock is returned when a patch sets a negative stock
	ErrNegativeStock = errors.New("Stock must be greater than or equal to 0")
	// ErrEmptyCategory is returned when a patch clears the category
	ErrEmptyCategory = errors.New("Category cannot be empty")
)

// IsEmpty reports whether the patch carries no client attribute
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.Tags == nil && p.Stock == nil
}

// Validate checks the attribute level rules of a patch. Taxonomy references
// are checked by the service.
func (p ProductPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrEmptyName
	}
	if p.Category != nil && *p.Category == "" {
		return ErrEmptyCategory
	}
	if p.Stock != nil && *p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Apply returns a copy of the product with the patch applied
func (p ProductPatch) Apply(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Tags != nil {
		product.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.UpdatedAt != nil {
		product.UpdatedAt = *p.UpdatedAt
	}
	return product
}
