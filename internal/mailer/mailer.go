package mailer

import "context"

// ItemLine is one itemized row of the confirmation summary.
type ItemLine struct {
	Name     string
	Quantity int
	Price    float64
}

// OrderConfirmation carries everything the confirmation email renders.
type OrderConfirmation struct {
	OrderNumber       string
	EstimatedDelivery string
	Subtotal          float64
	ShippingCost      float64
	TotalAmount       float64
	Items             []ItemLine
	CustomerName      string
	CustomerEmail     string
	ShippingAddress   string
	ContactPhone      string
}

// Sender delivers one transactional order confirmation. The production
// implementation speaks SMTP; tests substitute a fake.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, conf OrderConfirmation) error
}
