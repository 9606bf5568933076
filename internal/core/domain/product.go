package domain

import "time"

type Product struct {
	ID          ID
	Name        string
	Category    string
	Price       Amount
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(name, category string, price Amount, description string) *Product {
	return &Product{
		Name:        name,
		Category:    category,
		Price:       price,
		Description: description,
	}
}

// Update replaces every mutable field; there is no partial update.
func (p *Product) Update(name, category string, price Amount, description string) {
	p.Name = name
	p.Category = category
	p.Price = price
	p.Description = description
}
