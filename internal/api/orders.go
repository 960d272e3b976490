package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"product-api/internal/mailer"
	"product-api/internal/models"
)

// handlePlaceOrder runs the checkout sequence: resolve-or-create the
// customer, persist the order and its items in one transaction, then
// send the confirmation email. Persistence failure fails the request;
// email failure does not, it is reported through email_sent so a placed
// order is never disguised as a lost one.
func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Customer.Email == "" {
		respondError(w, http.StatusBadRequest, "missing customer email")
		return
	}
	if req.Order.OrderNumber == "" {
		req.Order.OrderNumber = uuid.NewString()
	}

	placed, err := s.store.PlaceOrder(r.Context(), req.Customer, req.Order, req.Items)
	if err != nil {
		s.log.Error().Err(err).Str("email", req.Customer.Email).Msg("Failed to place order")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	conf := mailer.OrderConfirmation{
		OrderNumber:       placed.OrderNumber,
		EstimatedDelivery: req.Order.EstimatedDelivery,
		Subtotal:          req.Order.Subtotal,
		ShippingCost:      req.Order.ShippingCost,
		TotalAmount:       req.Order.TotalAmount,
		CustomerName:      req.Customer.Name,
		CustomerEmail:     req.Customer.Email,
		ShippingAddress:   req.Customer.Address,
		ContactPhone:      req.Customer.Phone,
	}
	for _, item := range req.Items {
		conf.Items = append(conf.Items, mailer.ItemLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	emailSent := true
	if err := s.mail.SendOrderConfirmation(r.Context(), conf); err != nil {
		s.log.Warn().Err(err).Str("orderNumber", placed.OrderNumber).Msg("Order placed but confirmation email failed")
		emailSent = false
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":      "Order placed successfully",
		"order_number": placed.OrderNumber,
		"email_sent":   emailSent,
	})
}
