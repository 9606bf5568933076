package domain

import "time"

type OrderStatus string

const (
	OrderStatusOrdered    OrderStatus = "ORDERED"
	OrderStatusDelivering OrderStatus = "DELIVERING"
)

func (s OrderStatus) IsValid() bool {
	return s == OrderStatusOrdered || s == OrderStatusDelivering
}

type Address struct {
	Street   string
	Postcode string
}

// Order is the aggregate root for line items. Items are only created through
// AddItem and are persisted under the order's ID.
type Order struct {
	ID        ID
	Email     string
	Address   Address
	Status    OrderStatus
	Items     []*OrderProduct
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderProduct struct {
	ID        ID
	Product   *Product
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *OrderProduct) TotalAmount() Amount {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price.Multiply(i.Quantity)
}

func NewOrder(email, street, postcode string) *Order {
	return &Order{
		Email:   email,
		Address: Address{Street: street, Postcode: postcode},
		Status:  OrderStatusOrdered,
		Items:   []*OrderProduct{},
	}
}

func (o *Order) AddItem(product *Product, quantity int) *OrderProduct {
	item := &OrderProduct{
		Product:  product,
		Quantity: quantity,
	}
	o.Items = append(o.Items, item)
	return item
}

// UpdateStatus returns the previous status.
func (o *Order) UpdateStatus(status OrderStatus) OrderStatus {
	old := o.Status
	o.Status = status
	return old
}

func (o *Order) TotalAmount() Amount {
	total := Amount(0)
	for _, item := range o.Items {
		total = total.Add(item.TotalAmount())
	}
	return total
}

type OrderCreatedEvent struct {
	OrderID     ID          `json:"order_id"`
	Email       string      `json:"email"`
	Status      OrderStatus `json:"status"`
	TotalAmount Amount      `json:"total_amount"`
	ItemCount   int         `json:"item_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (e *OrderCreatedEvent) GetName() string {
	return "order.created"
}

func (e *OrderCreatedEvent) GetEntityName() string {
	return "order"
}

func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		OrderID:     order.ID,
		Email:       order.Email,
		Status:      order.Status,
		TotalAmount: order.TotalAmount(),
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
}

type OrderUpdateStatusEvent struct {
	OrderID   ID          `json:"order_id"`
	Status    OrderStatus `json:"status"`
	OldStatus OrderStatus `json:"old_status"`
	UpdatedAt time.Time   `json:"updated_at"`
	Email     string      `json:"email"`
}

func (e *OrderUpdateStatusEvent) GetName() string {
	return "order.update_status"
}

func (e *OrderUpdateStatusEvent) GetEntityName() string {
	return "order"
}

func NewOrderUpdateStatusEvent(orderID ID, status OrderStatus, oldStatus OrderStatus, updatedAt time.Time, email string) *OrderUpdateStatusEvent {
	return &OrderUpdateStatusEvent{
		OrderID:   orderID,
		Status:    status,
		OldStatus: oldStatus,
		UpdatedAt: updatedAt,
		Email:     email,
	}
}
