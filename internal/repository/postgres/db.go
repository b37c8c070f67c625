package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/repository"
)

const uniqueViolation = "23505"

// NewConnection opens and pings a postgres pool
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewRepositories wires every postgres-backed store onto one pool
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Order:    NewOrderRepository(db, logger),
		Product:  NewProductRepository(db, logger),
		Offer:    NewOfferRepository(db, logger),
		Customer: NewCustomerRepository(db, logger),
		Admin:    NewAdminRepository(db, logger),
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS admins (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	main_image TEXT NOT NULL DEFAULT '',
	additional_media TEXT[] NOT NULL DEFAULT '{}',
	category TEXT NOT NULL DEFAULT '',
	subcategory TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	mrp_price NUMERIC(12,2) NOT NULL,
	discount NUMERIC(5,2) NOT NULL DEFAULT 0,
	product_of_week BOOLEAN NOT NULL DEFAULT false,
	featured BOOLEAN NOT NULL DEFAULT false,
	colours TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS offers (
	id UUID PRIMARY KEY,
	coupon_name TEXT NOT NULL UNIQUE,
	discount NUMERIC(12,2) NOT NULL,
	minimum_purchase NUMERIC(12,2) NOT NULL DEFAULT 0,
	active BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	customer_id UUID,
	customer_name TEXT NOT NULL,
	customer_phone TEXT NOT NULL,
	shipping_address TEXT NOT NULL,
	items JSONB NOT NULL,
	total_price NUMERIC(12,2) NOT NULL,
	coupon_applied TEXT,
	gateway_order_id TEXT NOT NULL UNIQUE,
	gateway_payment_id TEXT NOT NULL,
	payment_status TEXT NOT NULL,
	order_status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_customer_phone ON orders (customer_phone);
CREATE INDEX IF NOT EXISTS idx_orders_order_status ON orders (order_status);
`

// Migrate creates the tables if they do not exist
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
