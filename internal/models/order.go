package models

import (
	"strings"
	"time"
)

// Order is a single customer purchase line item.
type Order struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CustomerName string    `json:"customerName" gorm:"not null"`
	Product      string    `json:"product" gorm:"not null"`
	ProductImage string    `json:"productImage,omitempty"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidationError reports a field that failed schema validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the full record against the schema constraints. Text fields
// are expected to be trimmed already.
func (o *Order) Validate() error {
	if o.CustomerName == "" {
		return &ValidationError{Field: "customerName", Message: "customerName is required"}
	}
	if o.Product == "" {
		return &ValidationError{Field: "product", Message: "product is required"}
	}
	if o.Quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "Quantity must be at least 1"}
	}
	if o.Price < 1 {
		return &ValidationError{Field: "price", Message: "Price must be at least 1"}
	}
	return nil
}

// CreateOrderRequest is the POST /orders payload. Quantity and price are
// pointers so a missing field is distinguishable from a zero value.
type CreateOrderRequest struct {
	CustomerName string   `json:"customerName"`
	Product      string   `json:"product"`
	ProductImage string   `json:"productImage"`
	Quantity     *int     `json:"quantity"`
	Price        *float64 `json:"price"`
}

// ToOrder trims text fields and builds the record to persist. Returns a
// ValidationError when a required field is missing or out of range.
func (r *CreateOrderRequest) ToOrder() (*Order, error) {
	if r.Quantity == nil {
		return nil, &ValidationError{Field: "quantity", Message: "quantity is required"}
	}
	if r.Price == nil {
		return nil, &ValidationError{Field: "price", Message: "price is required"}
	}

	order := &Order{
		CustomerName: strings.TrimSpace(r.CustomerName),
		Product:      strings.TrimSpace(r.Product),
		ProductImage: strings.TrimSpace(r.ProductImage),
		Quantity:     *r.Quantity,
		Price:        *r.Price,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderRequest is the PUT /orders/:id payload. Every field is optional;
// omitted fields keep their stored values.
type UpdateOrderRequest struct {
	CustomerName *string  `json:"customerName"`
	Product      *string  `json:"product"`
	ProductImage *string  `json:"productImage"`
	Quantity     *int     `json:"quantity"`
	Price        *float64 `json:"price"`
}

// ApplyTo merges the supplied fields onto the stored record. The merged result
// must be revalidated in full before saving.
func (r *UpdateOrderRequest) ApplyTo(order *Order) {
	if r.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*r.CustomerName)
	}
	if r.Product != nil {
		order.Product = strings.TrimSpace(*r.Product)
	}
	if r.ProductImage != nil {
		order.ProductImage = strings.TrimSpace(*r.ProductImage)
	}
	if r.Quantity != nil {
		order.Quantity = *r.Quantity
	}
	if r.Price != nil {
		order.Price = *r.Price
	}
}
