package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NaMinhyeok/order-practice/internal/adapters/http/handlers"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/dto"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

type ProductService interface {
	CreateProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id domain.ID, request *dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id domain.ID) (domain.ID, error)
	GetProduct(ctx context.Context, id domain.ID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
}

type ProductController struct {
	productService ProductService
}

type ProductResponse struct {
	ID          domain.ID `json:"id" example:"1"`
	Name        string    `json:"name" example:"Columbia Narino"`
	Category    string    `json:"category" example:"coffee bean"`
	Price       int64     `json:"price" example:"5000"`
	Description string    `json:"description" example:"single origin"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Price:       int64(product.Price),
		Description: product.Description,
	}
}

func NewProductController(productService ProductService) *ProductController {
	return &ProductController{productService: productService}
}

func parseProductID(c *gin.Context) (domain.ID, bool) {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("invalid product id"))
	}
	return id, ok
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Creates a new product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body     dto.CreateProductRequest true "Product data"
// @Success     201     {object} handlers.Response{data=ProductResponse}
// @Failure     400     {object} handlers.Response
// @Failure     500     {object} handlers.Response
// @Router      /api/v1/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, handlers.BindingError(err))
		return
	}
	product, err := pc.productService.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	handlers.Respond(c, http.StatusCreated, NewProductResponse(product))
}

// GetProduct godoc
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} handlers.Response{data=ProductResponse}
// @Failure     400 {object} handlers.Response
// @Failure     500 {object} handlers.Response
// @Router      /api/v1/products/{id} [get]
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	handlers.Respond(c, http.StatusOK, NewProductResponse(product))
}

// UpdateProduct godoc
// @Summary     Replace a product
// @Description Replaces every field of an existing product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     int                      true "Product ID"
// @Param       request body     dto.UpdateProductRequest true "Product data"
// @Success     200     {object} handlers.Response{data=ProductResponse}
// @Failure     400     {object} handlers.Response
// @Failure     500     {object} handlers.Response
// @Router      /api/v1/products/{id} [put]
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	var request dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, handlers.BindingError(err))
		return
	}
	product, err := pc.productService.UpdateProduct(c.Request.Context(), id, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	handlers.Respond(c, http.StatusOK, NewProductResponse(product))
}

// DeleteProduct godoc
// @Summary     Delete a product
// @Tags        products
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} handlers.Response{data=int}
// @Failure     400 {object} handlers.Response
// @Failure     409 {object} handlers.Response
// @Failure     500 {object} handlers.Response
// @Router      /api/v1/products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	deleted, err := pc.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	handlers.Respond(c, http.StatusOK, deleted)
}

// GetAll godoc
// @Summary     List all products
// @Description Returns all products
// @Tags        products
// @Produce     json
// @Success     200 {object} handlers.Response{data=[]ProductResponse}
// @Failure     500 {object} handlers.Response
// @Router      /api/v1/products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	products, err := pc.productService.GetAll(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}

	handlers.Respond(c, http.StatusOK, response)
}
