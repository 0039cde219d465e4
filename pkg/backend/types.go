package backend

import "time"

// OrderStatus is the backend-owned order lifecycle state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Statuses lists every order status in display order.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Role is assigned server-side; the gateway only reads it to gate admin
// surfaces. It is never a security boundary on its own.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Item is the catalog reference embedded in an order line.
type Item struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// OrderItem is one order line as sent to and echoed by the backend. Total is
// computed client-side and re-verified server-side.
type OrderItem struct {
	Item     Item  `json:"item"`
	Quantity int64 `json:"quantity"`
	Total    int64 `json:"total"`
}

// OrderDraft is the create-order request body.
type OrderDraft struct {
	Items           []OrderItem `json:"items"`
	BillingAddress  Address     `json:"billingAddress"`
	ShippingAddress Address     `json:"shippingAddress"`
	Note            string      `json:"note,omitempty"`
}

type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Order is owned by the backend; the gateway never mutates it except through
// the status-update and cancel calls.
type Order struct {
	ID              int64       `json:"id"`
	Status          OrderStatus `json:"status"`
	Customer        string      `json:"customer"`
	BillingAddress  Address     `json:"billingAddress"`
	ShippingAddress Address     `json:"shippingAddress"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"totalAmount"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type UserProfile struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}
