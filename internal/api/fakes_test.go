package api

import (
	"context"
	"sort"
	"strings"

	"product-api/internal/mailer"
	"product-api/internal/models"
	"product-api/internal/store"
)

// fakeStore is an in-memory Store used by the handler tests.
type fakeStore struct {
	products map[int64]models.Product
	nextID   int64

	customers map[string]int64
	orders    []models.Order
	items     []models.OrderItem

	listErr  error
	placeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[int64]models.Product),
		customers: make(map[string]int64),
		nextID:    1,
	}
}

func (f *fakeStore) add(name, category string, price float64, inStock bool) models.Product {
	p := models.Product{ID: f.nextID, Name: name, Category: category, Price: price, InStock: inStock}
	f.products[p.ID] = p
	f.nextID++
	return p
}

func (f *fakeStore) all() []models.Product {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.all(), nil
}

func (f *fakeStore) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) FilterProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Product{}
	for _, p := range f.all() {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.InStock != nil && p.InStock != *filter.InStock {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	switch filter.Sort {
	case store.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case store.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out, nil
}

func (f *fakeStore) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if name == "" {
		return f.all(), nil
	}
	out := []models.Product{}
	for _, p := range f.all() {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, name, category string, price float64, inStock bool) (models.Product, error) {
	return f.add(name, category, price, inStock), nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, id int64, patch store.ProductPatch) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	f.products[id] = p
	return &p, nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

func (f *fakeStore) PlaceOrder(ctx context.Context, customer models.OrderCustomer, details models.OrderDetails, items []models.OrderItemInput) (store.PlacedOrder, error) {
	if f.placeErr != nil {
		// Nothing is persisted on failure, mirroring the transactional rollback.
		return store.PlacedOrder{}, f.placeErr
	}

	customerID, ok := f.customers[customer.Email]
	if !ok {
		customerID = int64(len(f.customers) + 1)
		f.customers[customer.Email] = customerID
	}

	orderID := int64(len(f.orders) + 1)
	f.orders = append(f.orders, models.Order{
		ID:                orderID,
		CustomerID:        customerID,
		OrderNumber:       details.OrderNumber,
		Subtotal:          details.Subtotal,
		ShippingCost:      details.ShippingCost,
		TotalAmount:       details.TotalAmount,
		EstimatedDelivery: details.EstimatedDelivery,
	})
	for _, item := range items {
		f.items = append(f.items, models.OrderItem{
			ID:          int64(len(f.items) + 1),
			OrderID:     orderID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Price:       item.Price,
			ProductName: item.ProductName,
		})
	}
	return store.PlacedOrder{CustomerID: customerID, OrderID: orderID, OrderNumber: details.OrderNumber}, nil
}

// fakeSender records confirmations instead of sending them.
type fakeSender struct {
	sent    []mailer.OrderConfirmation
	sendErr error
}

func (f *fakeSender) SendOrderConfirmation(ctx context.Context, conf mailer.OrderConfirmation) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, conf)
	return nil
}
