package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"product-api/internal/models"
)

const productColumns = "id, name, category, price, instock"

// Postgres is the Store implementation backed by the hosted Postgres
// service, accessed through a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a connection pool against dsn and verifies it with a
// ping before returning.
func NewPostgres(ctx context.Context, dsn string, maxConns int32) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	log.Info().Msg("Connecting to database...")
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Msg("Database connection successful.")
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	log.Info().Msg("Closing database connection.")
	p.pool.Close()
}

func (p *Postgres) withTx(ctx context.Context, txFunc func(pgx.Tx) error) (err error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if pv := recover(); pv != nil {
			tx.Rollback(ctx)
			panic(pv) // re-panic after rollback
		} else if err != nil {
			tx.Rollback(ctx) // err is non-nil; don't change it
		} else {
			err = tx.Commit(ctx) // err is nil; if Commit returns error, update err
		}
	}()

	err = txFunc(tx)
	return err
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var pr models.Product
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Category, &pr.Price, &pr.InStock); err != nil {
			return nil, err
		}
		products = append(products, pr)
	}
	return products, rows.Err()
}

func (p *Postgres) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := p.pool.Query(ctx, "SELECT "+productColumns+" FROM products")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

func (p *Postgres) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	var pr models.Product
	err := p.pool.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id).
		Scan(&pr.ID, &pr.Name, &pr.Category, &pr.Price, &pr.InStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return pr, nil
}

// buildFilterQuery turns a ProductFilter into a parameterized SELECT.
// Present predicates are ANDed together; absent ones are omitted.
func buildFilterQuery(f ProductFilter) (string, []any) {
	var args []any
	var conds []string

	if f.Category != nil {
		args = append(args, *f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.InStock != nil {
		args = append(args, *f.InStock)
		conds = append(conds, fmt.Sprintf("instock = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	switch f.Sort {
	case SortPriceAsc:
		query += " ORDER BY price ASC"
	case SortPriceDesc:
		query += " ORDER BY price DESC"
	}
	return query, args
}

func (p *Postgres) FilterProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	query, args := buildFilterQuery(f)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}
	return scanProducts(rows)
}

func (p *Postgres) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	if name == "" {
		return p.ListProducts(ctx)
	}
	rows, err := p.pool.Query(ctx, "SELECT "+productColumns+" FROM products WHERE name ILIKE $1", "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return scanProducts(rows)
}

func (p *Postgres) CreateProduct(ctx context.Context, name, category string, price float64, inStock bool) (models.Product, error) {
	var pr models.Product
	err := p.pool.QueryRow(ctx,
		"INSERT INTO products (name, category, price, instock) VALUES ($1, $2, $3, $4) RETURNING "+productColumns,
		name, category, price, inStock).
		Scan(&pr.ID, &pr.Name, &pr.Category, &pr.Price, &pr.InStock)
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return pr, nil
}

// buildUpdateQuery turns a ProductPatch into a parameterized UPDATE for
// the given id. Only the fields named by the patch appear in the SET
// clause. The caller must not pass an empty patch.
func buildUpdateQuery(id int64, patch ProductPatch) (string, []any) {
	var args []any
	var sets []string

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Category != nil {
		args = append(args, *patch.Category)
		sets = append(sets, fmt.Sprintf("category = $%d", len(args)))
	}
	if patch.Price != nil {
		args = append(args, *patch.Price)
		sets = append(sets, fmt.Sprintf("price = $%d", len(args)))
	}
	if patch.InStock != nil {
		args = append(args, *patch.InStock)
		sets = append(sets, fmt.Sprintf("instock = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns)
	return query, args
}

// UpdateProduct applies the present fields of patch to the matching row.
// A missing row is not an error: the update simply matches nothing and
// the returned product is nil.
func (p *Postgres) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*models.Product, error) {
	if patch.IsEmpty() {
		pr, err := p.GetProduct(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &pr, nil
	}

	query, args := buildUpdateQuery(id, patch)
	var pr models.Product
	err := p.pool.QueryRow(ctx, query, args...).
		Scan(&pr.ID, &pr.Name, &pr.Category, &pr.Price, &pr.InStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return &pr, nil
}

// DeleteProduct removes the matching row. Deleting an id that matches
// nothing is a success.
func (p *Postgres) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := p.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// PlaceOrder runs the order placement sequence inside one transaction:
// resolve or create the customer by email, insert the order, then
// batch-insert its items. Any failure rolls the whole sequence back, so
// an item-insert error never leaves an orphaned order behind.
func (p *Postgres) PlaceOrder(ctx context.Context, customer models.OrderCustomer, details models.OrderDetails, items []models.OrderItemInput) (PlacedOrder, error) {
	var placed PlacedOrder
	placed.OrderNumber = details.OrderNumber

	err := p.withTx(ctx, func(tx pgx.Tx) error {
		var customerID int64
		err := tx.QueryRow(ctx, "SELECT id FROM customers WHERE email = $1", customer.Email).Scan(&customerID)
		if errors.Is(err, pgx.ErrNoRows) {
			// Two concurrent first orders for the same email can both miss
			// the lookup; the conflict clause makes the loser reuse the
			// winner's row instead of inserting a duplicate.
			err = tx.QueryRow(ctx, `
				INSERT INTO customers (name, email, address, phone)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (email) DO UPDATE SET
					name = EXCLUDED.name,
					address = EXCLUDED.address,
					phone = EXCLUDED.phone
				RETURNING id`,
				customer.Name, customer.Email, customer.Address, customer.Phone).Scan(&customerID)
		}
		if err != nil {
			return fmt.Errorf("resolve customer: %w", err)
		}
		placed.CustomerID = customerID

		err = tx.QueryRow(ctx, `
			INSERT INTO orders (customer_id, order_number, subtotal, shipping_cost, total_amount, estimated_delivery)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			customerID, details.OrderNumber, details.Subtotal, details.ShippingCost,
			details.TotalAmount, details.EstimatedDelivery).Scan(&placed.OrderID)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(
				"INSERT INTO order_items (order_id, product_id, quantity, price, product_name) VALUES ($1, $2, $3, $4, $5)",
				placed.OrderID, item.ProductID, item.Quantity, item.Price, item.ProductName)
		}
		results := tx.SendBatch(ctx, batch)
		for range items {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("create order items: %w", err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return PlacedOrder{}, err
	}
	return placed, nil
}
