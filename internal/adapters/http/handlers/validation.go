package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

// Keyed by "<json field>.<tag>".
var validationMessages = map[string]string{
	"email.notblank":                 "email is required",
	"email.max":                      "email must be 50 characters or fewer",
	"email.email":                    "email must be a valid email address",
	"address.notblank":               "address is required",
	"address.max":                    "address must be 200 characters or fewer",
	"postcode.notblank":              "postcode is required",
	"postcode.max":                   "postcode must be 20 characters or fewer",
	"orderProductsQuantity.required": "ordered products are required",
	"orderProductsQuantity.min":      "ordered products are required",
	"productId.gt":                   "product id must be positive",
	"quantity.gt":                    "quantity must be positive",
	"quantity.lte":                   "quantity must be 2147483647 or fewer",
	"name.notblank":                  "product name is required",
	"name.max":                       "product name must be 20 characters or fewer",
	"category.notblank":              "category is required",
	"category.max":                   "category must be 50 characters or fewer",
	"price.gt":                       "price must be positive",
	"description.notblank":           "description is required",
	"description.max":                "description must be 500 characters or fewer",
}

var registerOnce sync.Once

// RegisterValidators installs the notblank rule and JSON field naming on
// gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

// BindingError converts a ShouldBindJSON failure into an InvalidRequest
// carrying the first violated rule.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		if message, ok := validationMessages[first.Field()+"."+first.Tag()]; ok {
			return serviceerrors.NewInvalidRequestError("%s", message)
		}
		return serviceerrors.NewInvalidRequestError("%s is invalid", first.Field())
	}
	return serviceerrors.NewInvalidRequestError("invalid request body")
}
