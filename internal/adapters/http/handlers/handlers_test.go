package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaMinhyeok/order-practice/internal/adapters/http/handlers"
	"github.com/NaMinhyeok/order-practice/internal/core/dto"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

func init() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlers.Response {
	t.Helper()
	var resp handlers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "OK", handlers.StatusName(http.StatusOK))
	assert.Equal(t, "CREATED", handlers.StatusName(http.StatusCreated))
	assert.Equal(t, "BAD_REQUEST", handlers.StatusName(http.StatusBadRequest))
	assert.Equal(t, "TOO_MANY_REQUESTS", handlers.StatusName(http.StatusTooManyRequests))
	assert.Equal(t, "UNPROCESSABLE_ENTITY", handlers.StatusName(http.StatusUnprocessableEntity))
	assert.Equal(t, "UNKNOWN", handlers.StatusName(599))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found is a bad request", serviceerrors.NewNotFoundError("product with id %d not found", 7), 400, "product with id 7 not found"},
		{"invalid request", serviceerrors.NewInvalidRequestError("bad"), 400, "bad"},
		{"conflict", serviceerrors.NewConflictError("dup"), 409, "dup"},
		{"unprocessable", serviceerrors.NewUnprocessableEntityError("mismatch"), 422, "mismatch"},
		{"unknown error keeps its text", errors.New("boom"), 500, "boom"},
		{"empty error gets a fallback", errors.New(""), 500, "unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handlers.HandleError(c, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			resp := decode(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, handlers.StatusName(tt.code), resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestBindingError(t *testing.T) {
	bind := func(body string, target any) error {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		return c.ShouldBindJSON(target)
	}

	tests := []struct {
		name    string
		body    string
		target  func() any
		message string
	}{
		{"blank email", `{"email":"  ","address":"a","postcode":"1","orderProductsQuantity":[{"productId":1,"quantity":1}]}`, func() any { return &dto.CreateOrderRequest{} }, "email is required"},
		{"missing email", `{"address":"a","postcode":"1","orderProductsQuantity":[{"productId":1,"quantity":1}]}`, func() any { return &dto.CreateOrderRequest{} }, "email is required"},
		{"email of 51 characters", `{"email":"` + strings.Repeat("a", 45) + `@b.com","address":"a","postcode":"1","orderProductsQuantity":[{"productId":1,"quantity":1}]}`, func() any { return &dto.CreateOrderRequest{} }, "email must be 50 characters or fewer"},
		{"invalid email", `{"email":"nope","address":"a","postcode":"1","orderProductsQuantity":[{"productId":1,"quantity":1}]}`, func() any { return &dto.CreateOrderRequest{} }, "email must be a valid email address"},
		{"missing products", `{"email":"a@b.com","address":"a","postcode":"1"}`, func() any { return &dto.CreateOrderRequest{} }, "ordered products are required"},
		{"empty products", `{"email":"a@b.com","address":"a","postcode":"1","orderProductsQuantity":[]}`, func() any { return &dto.CreateOrderRequest{} }, "ordered products are required"},
		{"zero quantity", `{"email":"a@b.com","address":"a","postcode":"1","orderProductsQuantity":[{"productId":1,"quantity":0}]}`, func() any { return &dto.CreateOrderRequest{} }, "quantity must be positive"},
		{"quantity over int4", `{"email":"a@b.com","address":"a","postcode":"1","orderProductsQuantity":[{"productId":1,"quantity":2147483648}]}`, func() any { return &dto.CreateOrderRequest{} }, "quantity must be 2147483647 or fewer"},
		{"negative product id", `{"email":"a@b.com","address":"a","postcode":"1","orderProductsQuantity":[{"productId":-1,"quantity":1}]}`, func() any { return &dto.CreateOrderRequest{} }, "product id must be positive"},
		{"long product name", `{"name":"123456789012345678901","category":"c","price":1,"description":"d"}`, func() any { return &dto.CreateProductRequest{} }, "product name must be 20 characters or fewer"},
		{"zero price", `{"name":"n","category":"c","price":0,"description":"d"}`, func() any { return &dto.CreateProductRequest{} }, "price must be positive"},
		{"malformed json", `{"name":`, func() any { return &dto.CreateProductRequest{} }, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handlers.BindingError(bind(tt.body, tt.target()))
			require.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
