// Package store provides read access to the customers, service_plans and
// customer_usage tables backing the support handlers. The store is read-only
// from the router's perspective; Init/Seed exist for provisioning and tests.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	errx "github.com/telsupport/server/internal/core/error"
)

// DefaultCustomerID is the demo identity billing and plan handlers fall back
// to when the caller cannot be resolved. A multi-tenant deployment must
// replace this fallback with a hard failure; every use is logged at WARN.
const DefaultCustomerID = "CUST001"

// ErrNotFound marks an identity or record lookup miss.
var ErrNotFound = errors.New("store: not found")

// Store wraps the relational customer database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle. Used by tests and alternate drivers.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

// Customer is a row of the customers table.
type Customer struct {
	CustomerID    string
	Name          string
	Email         string
	ServicePlanID string
	AccountStatus string
}

// Plan is a row of the service_plans table.
type Plan struct {
	PlanID       string
	Name         string
	MonthlyCost  float64
	DataLimitGB  float64
	VoiceMinutes int
	SMSCount     int
}

// UsageRecord is a row of the customer_usage table.
type UsageRecord struct {
	CustomerID        string
	DataUsedGB        float64
	VoiceMinutesUsed  int
	SMSCountUsed      int
	AdditionalCharges float64
	TotalBillAmount   float64
	BillingPeriodEnd  string
}

// BillingDetails joins the customer's most recent usage row with their plan,
// ties broken by the most recent billing-period end.
type BillingDetails struct {
	Name              string
	Email             string
	ServicePlanID     string
	DataUsedGB        float64
	VoiceMinutesUsed  int
	SMSCountUsed      int
	AdditionalCharges float64
	TotalBillAmount   float64
	MonthlyCost       float64
	DataLimitGB       float64
	VoiceMinutes      int
	SMSCount          int
}

// NetworkProfile is the account context the network handler reasons over.
type NetworkProfile struct {
	CustomerID    string
	Name          string
	AccountStatus string
	PlanName      string
}

// UsageSummary is the current-period usage the plan handler compares against
// the plan catalogue.
type UsageSummary struct {
	ServicePlanID    string
	DataUsedGB       float64
	VoiceMinutesUsed int
	SMSCountUsed     int
	PlanName         string
}

// CustomerIDByEmail resolves a caller email to a customer id.
// Returns ErrNotFound when the email is not registered.
func (s *Store) CustomerIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT customer_id FROM customers WHERE email = ?`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errx.WrapDB(err)
	}
	return id, nil
}

// BillingDetailsByID fetches the customer's latest billing picture.
func (s *Store) BillingDetailsByID(ctx context.Context, customerID string) (*BillingDetails, error) {
	const q = `
SELECT c.name, c.email, c.service_plan_id,
       u.data_used_gb, u.voice_minutes_used, u.sms_count_used,
       u.additional_charges, u.total_bill_amount,
       p.monthly_cost, p.data_limit_gb, p.voice_minutes, p.sms_count
FROM customers c
LEFT JOIN customer_usage u ON c.customer_id = u.customer_id
LEFT JOIN service_plans p ON c.service_plan_id = p.plan_id
WHERE c.customer_id = ?
ORDER BY u.billing_period_end DESC
LIMIT 1`

	var (
		d                                 BillingDetails
		dataUsed, addl, total, cost, lim  sql.NullFloat64
		voiceUsed, smsUsed, voiceLim, sms sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, q, customerID).Scan(
		&d.Name, &d.Email, &d.ServicePlanID,
		&dataUsed, &voiceUsed, &smsUsed,
		&addl, &total,
		&cost, &lim, &voiceLim, &sms,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	d.DataUsedGB = dataUsed.Float64
	d.VoiceMinutesUsed = int(voiceUsed.Int64)
	d.SMSCountUsed = int(smsUsed.Int64)
	d.AdditionalCharges = addl.Float64
	d.TotalBillAmount = total.Float64
	d.MonthlyCost = cost.Float64
	d.DataLimitGB = lim.Float64
	d.VoiceMinutes = int(voiceLim.Int64)
	d.SMSCount = int(sms.Int64)
	return &d, nil
}

// NetworkProfileByEmail fetches the account context for network diagnostics.
// Returns ErrNotFound when the email is not registered.
func (s *Store) NetworkProfileByEmail(ctx context.Context, email string) (*NetworkProfile, error) {
	const q = `
SELECT c.customer_id, c.name, c.account_status, COALESCE(p.name, '')
FROM customers c
LEFT JOIN service_plans p ON c.service_plan_id = p.plan_id
WHERE c.email = ?`

	var np NetworkProfile
	err := s.db.QueryRowContext(ctx, q, email).Scan(&np.CustomerID, &np.Name, &np.AccountStatus, &np.PlanName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	return &np, nil
}

// AvailablePlans lists the full plan catalogue.
func (s *Store) AvailablePlans(ctx context.Context) ([]Plan, error) {
	const q = `SELECT plan_id, name, monthly_cost, data_limit_gb, voice_minutes, sms_count FROM service_plans`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.PlanID, &p.Name, &p.MonthlyCost, &p.DataLimitGB, &p.VoiceMinutes, &p.SMSCount); err != nil {
			return nil, errx.WrapDB(err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapDB(err)
	}
	return plans, nil
}

// UsageSummaryByID fetches the current usage picture for plan advice.
// Returns ErrNotFound when the customer has no usage row.
func (s *Store) UsageSummaryByID(ctx context.Context, customerID string) (*UsageSummary, error) {
	const q = `
SELECT c.service_plan_id, u.data_used_gb, u.voice_minutes_used, u.sms_count_used, p.name
FROM customers c
JOIN customer_usage u ON c.customer_id = u.customer_id
JOIN service_plans p ON c.service_plan_id = p.plan_id
WHERE c.customer_id = ?
ORDER BY u.billing_period_end DESC
LIMIT 1`

	var us UsageSummary
	err := s.db.QueryRowContext(ctx, q, customerID).Scan(
		&us.ServicePlanID, &us.DataUsedGB, &us.VoiceMinutesUsed, &us.SMSCountUsed, &us.PlanName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	return &us, nil
}

// CustomerByEmail fetches the customer profile for the account endpoint.
func (s *Store) CustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	const q = `SELECT customer_id, name, email, service_plan_id, account_status FROM customers WHERE email = ?`

	var c Customer
	err := s.db.QueryRowContext(ctx, q, email).Scan(&c.CustomerID, &c.Name, &c.Email, &c.ServicePlanID, &c.AccountStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	return &c, nil
}

// UsageHistoryByID lists usage rows for a customer, most recent period first.
func (s *Store) UsageHistoryByID(ctx context.Context, customerID string) ([]UsageRecord, error) {
	const q = `
SELECT customer_id, data_used_gb, voice_minutes_used, sms_count_used,
       additional_charges, total_bill_amount, billing_period_end
FROM customer_usage
WHERE customer_id = ?
ORDER BY billing_period_end DESC`

	rows, err := s.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	defer rows.Close()

	var history []UsageRecord
	for rows.Next() {
		var u UsageRecord
		if err := rows.Scan(&u.CustomerID, &u.DataUsedGB, &u.VoiceMinutesUsed, &u.SMSCountUsed,
			&u.AdditionalCharges, &u.TotalBillAmount, &u.BillingPeriodEnd); err != nil {
			return nil, errx.WrapDB(err)
		}
		history = append(history, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapDB(err)
	}
	return history, nil
}
