package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func productsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			instock BOOLEAN NOT NULL
		);
	`
}

func customersSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT ''
		);
	`
}

func ordersSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES customers(id),
			order_number TEXT NOT NULL,
			subtotal DOUBLE PRECISION NOT NULL,
			shipping_cost DOUBLE PRECISION NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			estimated_delivery TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
}

func orderItemsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id),
			product_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			product_name TEXT NOT NULL DEFAULT ''
		);
	`
}

// EnsureSchema creates every table the service uses if it does not
// already exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	return p.withTx(ctx, func(tx pgx.Tx) error {
		for _, ddl := range []string{productsSchema(), customersSchema(), ordersSchema(), orderItemsSchema()} {
			if _, err := tx.Exec(ctx, ddl); err != nil {
				return err
			}
		}
		return nil
	})
}

// DropSchema removes every table the service uses.
func (p *Postgres) DropSchema(ctx context.Context) error {
	return p.withTx(ctx, func(tx pgx.Tx) error {
		for _, table := range []string{"order_items", "orders", "customers", "products"} {
			if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
				return err
			}
		}
		return nil
	})
}
