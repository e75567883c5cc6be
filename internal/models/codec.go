package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a required business field is absent.
var ErrMissingField = errors.New("missing required field")

// ProductJSON is the wire representation of a product.
type ProductJSON struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Quantity    int    `json:"quantity"`
}

// EncodeProduct maps a product to its wire representation.
func EncodeProduct(p Product) ProductJSON {
	return ProductJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}

// EncodeProducts maps products to wire representations, preserving order.
// A nil slice encodes to an empty array.
func EncodeProducts(products []Product) []ProductJSON {
	out := make([]ProductJSON, 0, len(products))
	for _, p := range products {
		out = append(out, EncodeProduct(p))
	}
	return out
}

// DecodeProductInput parses the business fields of a product from a JSON
// object. Any id in the body is ignored.
func DecodeProductInput(body []byte) (ProductInput, error) {
	var in ProductInput
	if err := json.Unmarshal(body, &in); err != nil {
		return ProductInput{}, fmt.Errorf("invalid product body: %w", err)
	}
	if missing := in.MissingFields(); len(missing) > 0 {
		return in, fmt.Errorf("%w: %v", ErrMissingField, missing)
	}
	return in, nil
}

// MissingFields lists the wire names of absent business fields.
func (in ProductInput) MissingFields() []string {
	var missing []string
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.Description == nil {
		missing = append(missing, "description")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Quantity == nil {
		missing = append(missing, "quantity")
	}
	return missing
}
