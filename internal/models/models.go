package models

import "time"

// --- Database Models ---

// Product represents one row of the products table.
type Product struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Category string  `db:"category" json:"category"`
	Price    float64 `db:"price" json:"price"`
	InStock  bool    `db:"instock" json:"instock"`
}

// Customer represents one row of the customers table. Email is the unique
// lookup key: at most one customer row exists per email address.
type Customer struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
}

// Order represents one row of the orders table. Orders are created once per
// successful checkout and never mutated afterwards.
type Order struct {
	ID                int64     `db:"id" json:"id"`
	CustomerID        int64     `db:"customer_id" json:"customer_id"`
	OrderNumber       string    `db:"order_number" json:"order_number"`
	Subtotal          float64   `db:"subtotal" json:"subtotal"`
	ShippingCost      float64   `db:"shipping_cost" json:"shipping_cost"`
	TotalAmount       float64   `db:"total_amount" json:"total_amount"`
	EstimatedDelivery string    `db:"estimated_delivery" json:"estimated_delivery"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// OrderItem represents one line item of an order.
type OrderItem struct {
	ID          int64   `db:"id" json:"id"`
	OrderID     int64   `db:"order_id" json:"order_id"`
	ProductID   int64   `db:"product_id" json:"product_id"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	ProductName string  `db:"product_name" json:"product_name"`
}

// --- Request Payloads ---

// CreateProductRequest carries the body of POST /products. Fields are
// pointers so that an absent field can be told apart from a legitimate
// zero value such as price 0 or instock false.
type CreateProductRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	InStock  *bool    `json:"instock"`
}

// Missing reports whether any required product field is absent.
func (r CreateProductRequest) Missing() bool {
	return r.Name == nil || r.Category == nil || r.Price == nil || r.InStock == nil
}

// UpdateProductRequest carries the body of PUT /updateProducts/{id}.
// Only the fields present in the body are applied; omitted fields are
// left untouched on the stored row.
type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	InStock  *bool    `json:"instock"`
}

// OrderCustomer is the customer block of a place-order request.
type OrderCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// OrderDetails is the order block of a place-order request.
type OrderDetails struct {
	OrderNumber       string  `json:"order_number"`
	Subtotal          float64 `json:"subtotal"`
	ShippingCost      float64 `json:"shipping_cost"`
	TotalAmount       float64 `json:"total_amount"`
	EstimatedDelivery string  `json:"estimated_delivery"`
}

// OrderItemInput is one line item of a place-order request.
type OrderItemInput struct {
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name"`
}

// PlaceOrderRequest carries the body of POST /orders.
type PlaceOrderRequest struct {
	Customer OrderCustomer    `json:"customer"`
	Order    OrderDetails     `json:"order"`
	Items    []OrderItemInput `json:"items"`
}
