package dto

import "github.com/NaMinhyeok/order-practice/internal/core/domain"

type OrderProductQuantity struct {
	ProductID domain.ID `json:"productId" binding:"gt=0"`
	Quantity  int       `json:"quantity" binding:"gt=0,lte=2147483647"`
}

type CreateOrderRequest struct {
	Email                 string                 `json:"email" binding:"notblank,max=50,email"`
	Address               string                 `json:"address" binding:"notblank,max=200"`
	Postcode              string                 `json:"postcode" binding:"notblank,max=20"`
	OrderProductsQuantity []OrderProductQuantity `json:"orderProductsQuantity" binding:"required,min=1,dive"`
}

// ProductQuantities collapses repeated product ids; the last quantity given
// for an id wins. The returned ids keep first-seen order.
func (r *CreateOrderRequest) ProductQuantities() ([]domain.ID, map[domain.ID]int) {
	ids := make([]domain.ID, 0, len(r.OrderProductsQuantity))
	quantities := make(map[domain.ID]int, len(r.OrderProductsQuantity))
	for _, item := range r.OrderProductsQuantity {
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] = item.Quantity
	}
	return ids, quantities
}
