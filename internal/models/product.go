package models

// Product represents a product in the catalogue.
type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(250)"`
	Price       int
	Quantity    int
}

// ProductInput carries the client-supplied business fields of a product.
// Pointer fields distinguish an absent field from a zero value.
type ProductInput struct {
	Name        *string `json:"name" validate:"required,max=50"`
	Description *string `json:"description" validate:"required,max=250"`
	Price       *int    `json:"price" validate:"required"`
	Quantity    *int    `json:"quantity" validate:"required"`
}

// Apply overwrites the business fields of p with the input values.
// The input must have passed validation.
func (in ProductInput) Apply(p *Product) {
	p.Name = *in.Name
	p.Description = *in.Description
	p.Price = *in.Price
	p.Quantity = *in.Quantity
}

// NewProduct builds a product without an id from validated input.
func (in ProductInput) NewProduct() Product {
	var p Product
	in.Apply(&p)
	return p
}
