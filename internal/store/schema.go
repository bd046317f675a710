package store

import (
	"context"
	"fmt"
)

const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS service_plans (
    plan_id VARCHAR(32) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    monthly_cost REAL NOT NULL,
    data_limit_gb REAL NOT NULL,
    voice_minutes INTEGER NOT NULL,
    sms_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
    customer_id VARCHAR(32) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    service_plan_id VARCHAR(32) REFERENCES service_plans(plan_id),
    account_status VARCHAR(32) NOT NULL DEFAULT 'Active'
);

CREATE TABLE IF NOT EXISTS customer_usage (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id VARCHAR(32) NOT NULL REFERENCES customers(customer_id),
    data_used_gb REAL NOT NULL DEFAULT 0,
    voice_minutes_used INTEGER NOT NULL DEFAULT 0,
    sms_count_used INTEGER NOT NULL DEFAULT 0,
    additional_charges REAL NOT NULL DEFAULT 0,
    total_bill_amount REAL NOT NULL DEFAULT 0,
    billing_period_end DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email);
CREATE INDEX IF NOT EXISTS idx_usage_customer_period ON customer_usage(customer_id, billing_period_end);
`

// Init creates the schema when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

const seedSQL = `
INSERT OR IGNORE INTO service_plans (plan_id, name, monthly_cost, data_limit_gb, voice_minutes, sms_count) VALUES
    ('PLAN01', 'Basic Saver', 299, 2, 300, 100),
    ('PLAN02', 'Smart Connect', 499, 10, 1000, 500),
    ('PLAN03', 'Power Unlimited', 799, 50, 3000, 1000),
    ('PLAN04', 'Pro Max 5G', 1199, 150, 10000, 3000);

INSERT OR IGNORE INTO customers (customer_id, name, email, service_plan_id, account_status) VALUES
    ('CUST001', 'Arjun Mehta', 'arjun.mehta@example.com', 'PLAN02', 'Active'),
    ('CUST002', 'Priya Sharma', 'priya.sharma@example.com', 'PLAN03', 'Active'),
    ('CUST003', 'Rahul Verma', 'rahul.verma@example.com', 'PLAN01', 'Suspended'),
    ('CUST004', 'Sneha Iyer', 'sneha.iyer@example.com', 'PLAN04', 'Active');

INSERT OR IGNORE INTO customer_usage (customer_id, data_used_gb, voice_minutes_used, sms_count_used, additional_charges, total_bill_amount, billing_period_end) VALUES
    ('CUST001', 14.2, 820, 130, 260, 759, '2025-07-31'),
    ('CUST001', 9.1, 640, 95, 0, 499, '2025-06-30'),
    ('CUST002', 38.5, 2100, 410, 0, 799, '2025-07-31'),
    ('CUST003', 1.8, 120, 22, 0, 299, '2025-07-31'),
    ('CUST004', 96.4, 5400, 860, 0, 1199, '2025-07-31');
`

// Seed loads demo rows so a fresh database can answer queries out of the box.
func (s *Store) Seed(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	return nil
}
