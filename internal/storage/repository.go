// Package storage owns the durable state of the rug store: the SQLite
// schema, the connection lifecycle and every read/write against the
// customers and jobs tables. It is the sole writer of entity state.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"rugstore/internal/core"

	_ "modernc.org/sqlite"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrJobNotFound      = errors.New("job not found")
)

// NewJob carries the fields required to insert a job. Every job starts in
// core.StatusNotStarted; status is set explicitly on insert as well as being
// the column default.
type NewJob struct {
	CustomerID   int64
	Type         string
	Size         string
	PhotoPath    string // empty means no photo
	ReceivedDate core.Date
	DueDate      core.Date
	PriceCents   int64
}

// SQLiteRepository is the persistence store. It holds one shared connection
// for the process lifetime and serializes writes behind a single lock, so
// concurrent callers are safe even though the original design had exactly
// one caller.
type SQLiteRepository struct {
	db *sql.DB
	mu sync.Mutex // guards all writes
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// One shared connection keeps session pragmas effective and makes every
	// statement commit in arrival order.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertCustomer creates a customer record and returns it with its
// assigned identifier.
func (r *SQLiteRepository) InsertCustomer(ctx context.Context, name, contactInfo string) (core.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, contact_info) VALUES (?, ?)`,
		name, nullableText(contactInfo))
	if err != nil {
		return core.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Customer{}, fmt.Errorf("customer insert id: %w", err)
	}

	slog.InfoContext(ctx, "Customer created", "id", id, "name", name)

	return core.Customer{ID: id, Name: name, ContactInfo: contactInfo}, nil
}

// FindCustomerByExactName resolves a customer by exact, case-sensitive name
// match. Returns ErrCustomerNotFound when absent.
func (r *SQLiteRepository) FindCustomerByExactName(ctx context.Context, name string) (core.Customer, error) {
	var c core.Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(contact_info, '')
		 FROM customers
		 WHERE name = ?
		 ORDER BY id
		 LIMIT 1`,
		name).Scan(&c.ID, &c.Name, &c.ContactInfo)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return core.Customer{}, fmt.Errorf("find customer by name: %w", err)
	}
	return c, nil
}

// SearchCustomersByName returns customers whose name contains the substring,
// case-insensitively, ordered by id. The empty substring matches everyone.
func (r *SQLiteRepository) SearchCustomersByName(ctx context.Context, substring string) ([]core.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(contact_info, '')
		 FROM customers
		 WHERE lower(name) LIKE '%' || lower(?) || '%'
		 ORDER BY id`,
		substring)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	var customers []core.Customer
	for rows.Next() {
		var c core.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactInfo); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// InsertJob creates a job under an existing customer and returns it fully
// populated, status defaulted to Not Started.
func (r *SQLiteRepository) InsertJob(ctx context.Context, job NewJob) (core.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (
		   customer_id,
		   type,
		   size,
		   photo_path,
		   received_date,
		   due_date,
		   price_cents,
		   status
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.CustomerID,
		job.Type,
		job.Size,
		nullableText(job.PhotoPath),
		job.ReceivedDate.String(),
		job.DueDate.String(),
		job.PriceCents,
		core.StatusNotStarted.String(),
	)
	if err != nil {
		return core.Job{}, fmt.Errorf("insert job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Job{}, fmt.Errorf("job insert id: %w", err)
	}

	slog.InfoContext(ctx, "Job created",
		"id", id,
		"customer_id", job.CustomerID,
		"due_date", job.DueDate.String(),
		"price_cents", job.PriceCents)

	return r.GetJob(ctx, id)
}

const jobSelect = `
	SELECT j.id, j.type, j.size, COALESCE(j.photo_path, ''),
	       j.received_date, j.due_date, j.price_cents, j.status,
	       c.id, c.name, COALESCE(c.contact_info, '')
	FROM jobs j
	JOIN customers c ON c.id = j.customer_id`

// GetJob returns one job, joined with its customer.
func (r *SQLiteRepository) GetJob(ctx context.Context, id int64) (core.Job, error) {
	row := r.db.QueryRowContext(ctx, jobSelect+` WHERE j.id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Job{}, ErrJobNotFound
	}
	if err != nil {
		return core.Job{}, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// ListJobs returns every job joined with its owning customer, ordered by
// job id ascending.
func (r *SQLiteRepository) ListJobs(ctx context.Context) ([]core.Job, error) {
	rows, err := r.db.QueryContext(ctx, jobSelect+` ORDER BY j.id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListJobsForCustomers returns the jobs belonging to the given customer set,
// ordered by job id ascending. An empty set yields no jobs.
func (r *SQLiteRepository) ListJobsForCustomers(ctx context.Context, customerIDs []int64) ([]core.Job, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(customerIDs)), ",")
	args := make([]any, len(customerIDs))
	for i, id := range customerIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		jobSelect+` WHERE j.customer_id IN (`+placeholders+`) ORDER BY j.id`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs for customers: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// UpdateJobStatus persists a new status for an existing job and returns the
// updated record. Returns ErrJobNotFound if no job has that identifier.
func (r *SQLiteRepository) UpdateJobStatus(ctx context.Context, id int64, status core.Status) (core.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ? WHERE id = ?`,
		status.String(), id)
	if err != nil {
		return core.Job{}, fmt.Errorf("update job status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Job{}, fmt.Errorf("update job status affected rows: %w", err)
	}
	if affected == 0 {
		return core.Job{}, ErrJobNotFound
	}

	slog.InfoContext(ctx, "Job status updated", "id", id, "status", status.String())

	return r.GetJob(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (core.Job, error) {
	var (
		job          core.Job
		receivedDate string
		dueDate      string
		status       string
	)
	err := row.Scan(
		&job.ID, &job.Type, &job.Size, &job.PhotoPath,
		&receivedDate, &dueDate, &job.Price.Cents, &status,
		&job.Customer.ID, &job.Customer.Name, &job.Customer.ContactInfo,
	)
	if err != nil {
		return core.Job{}, err
	}
	if job.ReceivedDate, err = core.ParseDate(receivedDate); err != nil {
		return core.Job{}, fmt.Errorf("job %d received_date %q: %w", job.ID, receivedDate, err)
	}
	if job.DueDate, err = core.ParseDate(dueDate); err != nil {
		return core.Job{}, fmt.Errorf("job %d due_date %q: %w", job.ID, dueDate, err)
	}
	job.Status = core.Status(status)
	return job, nil
}

func collectJobs(rows *sql.Rows) ([]core.Job, error) {
	var jobs []core.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
