package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NaMinhyeok/order-practice/internal/adapters/http/handlers"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/dto"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

type OrderService interface {
	CreateOrder(ctx context.Context, idempotencyKey string, request *dto.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id domain.ID) (*domain.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]*domain.Order, error)
}

type OrderController struct {
	orderService OrderService
}

type OrderDetailResponse struct {
	Category string `json:"category" example:"coffee bean"`
	Price    int64  `json:"price" example:"5000"`
	Quantity int    `json:"quantity" example:"2"`
}

type OrderResponse struct {
	ID           domain.ID             `json:"id" example:"1"`
	Email        string                `json:"email" example:"buyer@example.com"`
	Address      string                `json:"address" example:"1 Main St"`
	Postcode     string                `json:"postcode" example:"12345"`
	OrderStatus  string                `json:"orderStatus" example:"ORDERED"`
	TotalPrice   int64                 `json:"totalPrice" example:"10000"`
	OrderDetails []OrderDetailResponse `json:"orderDetails"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	details := make([]OrderDetailResponse, 0, len(order.Items))
	for _, item := range order.Items {
		detail := OrderDetailResponse{Quantity: item.Quantity}
		if item.Product != nil {
			detail.Category = item.Product.Category
			detail.Price = int64(item.Product.Price)
		}
		details = append(details, detail)
	}
	return OrderResponse{
		ID:           order.ID,
		Email:        order.Email,
		Address:      order.Address.Street,
		Postcode:     order.Address.Postcode,
		OrderStatus:  string(order.Status),
		TotalPrice:   int64(order.TotalAmount()),
		OrderDetails: details,
	}
}

func NewOrderController(orderService OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder godoc
// @Summary     Create an order
// @Description Creates an order with its line items; nothing is stored if any product is missing
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                 false "Idempotency key"
// @Param       request         body     dto.CreateOrderRequest true  "Order data"
// @Success     201             {object} handlers.Response{data=OrderResponse}
// @Failure     400             {object} handlers.Response
// @Failure     409             {object} handlers.Response
// @Failure     422             {object} handlers.Response
// @Failure     429             {object} handlers.Response
// @Failure     500             {object} handlers.Response
// @Router      /api/v1/orders [post]
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var request dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, handlers.BindingError(err))
		return
	}
	idempotencyKey := c.GetHeader("Idempotency-Key")
	order, err := oc.orderService.CreateOrder(c.Request.Context(), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	handlers.Respond(c, http.StatusCreated, NewOrderResponse(order))
}

// GetOrderByID godoc
// @Summary     Get order by ID
// @Tags        orders
// @Produce     json
// @Param       id  path     int true "Order ID"
// @Success     200 {object} handlers.Response{data=OrderResponse}
// @Failure     400 {object} handlers.Response
// @Failure     500 {object} handlers.Response
// @Router      /api/v1/orders/{id} [get]
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("invalid order id"))
		return
	}
	order, err := oc.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	handlers.Respond(c, http.StatusOK, NewOrderResponse(order))
}

// GetOrdersByEmail godoc
// @Summary     List orders by email
// @Tags        orders
// @Produce     json
// @Param       email query    string true "Customer email"
// @Success     200   {object} handlers.Response{data=[]OrderResponse}
// @Failure     400   {object} handlers.Response
// @Failure     500   {object} handlers.Response
// @Router      /api/v1/orders [get]
func (oc *OrderController) GetOrdersByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("email is required"))
		return
	}
	orders, err := oc.orderService.GetOrdersByEmail(c.Request.Context(), email)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = NewOrderResponse(order)
	}
	handlers.Respond(c, http.StatusOK, response)
}
