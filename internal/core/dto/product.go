package dto

type CreateProductRequest struct {
	Name        string `json:"name" binding:"notblank,max=20"`
	Category    string `json:"category" binding:"notblank,max=50"`
	Price       int64  `json:"price" binding:"gt=0"`
	Description string `json:"description" binding:"notblank,max=500"`
}

// UpdateProductRequest carries the full replacement record.
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"notblank,max=20"`
	Category    string `json:"category" binding:"notblank,max=50"`
	Price       int64  `json:"price" binding:"gt=0"`
	Description string `json:"description" binding:"notblank,max=500"`
}
