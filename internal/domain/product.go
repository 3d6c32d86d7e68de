package domain

import "time"

const ProductEntity = "Product"

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int64     `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	Available   bool      `db:"available" json:"available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateProductInput struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"max=100"`
}

// UpdateProductInput is a partial update; nil fields are left untouched.
// ID is accepted in payloads but never written.
type UpdateProductInput struct {
	ID          *int64  `json:"id,omitempty" validate:"-"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Available   *bool   `json:"available,omitempty"`
}

func (in *UpdateProductInput) IsEmpty() bool {
	return in == nil ||
		(in.Name == nil && in.Description == nil && in.Price == nil &&
			in.Category == nil && in.Available == nil)
}
