package models

import "net/url"

// PlaceholderImage is shown in place of a product image that cannot be displayed
const PlaceholderImage = "https://via.placeholder.com/64x64?text=No+Image"

// Product represents an inventory record held by the remote collection resource
// The identifier is assigned remotely and never changes afterwards
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// ProductInput is a product without its identifier, as sent on create and update
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
}

// Input strips the identifier from the product
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
	}
}

// WithID builds a full product from the input and an assigned identifier
func (in ProductInput) WithID(id string) Product {
	return Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
	}
}

// DisplayImage returns the image to render for the product.
// Anything that is not an absolute http(s) URL falls back to PlaceholderImage;
// the stored Image value is left untouched.
func (p Product) DisplayImage() string {
	u, err := url.Parse(p.Image)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return PlaceholderImage
	}
	return p.Image
}
