package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"rugstore/internal/core"
	"rugstore/internal/log"
	"rugstore/internal/storage"
)

// IntakeRequest carries the raw form input for a new job. Price and dates
// arrive as strings exactly as typed; parsing failures surface to the caller
// before any write happens.
type IntakeRequest struct {
	CustomerName string
	ContactInfo  string
	Type         string
	Size         string
	Price        string
	ReceivedDate string
	DueDate      string
	PhotoPath    string
}

// IntakeService owns the write side of the domain: job intake with
// customer find-or-create, and status updates.
type IntakeService struct {
	storage *storage.SQLiteRepository

	// Serializes the find-or-create customer sequence so two concurrent
	// intakes for the same name cannot both insert.
	mu sync.Mutex
}

func NewIntakeService(storage *storage.SQLiteRepository) *IntakeService {
	return &IntakeService{storage: storage}
}

// AddJob validates the request, resolves the customer by exact name
// (creating it with the supplied contact info if absent) and creates the
// job under that customer. Validation failures never touch the store.
func (s *IntakeService) AddJob(ctx context.Context, req IntakeRequest) (core.Job, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return core.Job{}, core.ErrEmptyCustomerName
	}
	priceCents, err := core.ParsePriceCents(req.Price)
	if err != nil {
		return core.Job{}, fmt.Errorf("price %q: %w", req.Price, err)
	}
	receivedDate, err := core.ParseDate(req.ReceivedDate)
	if err != nil {
		return core.Job{}, fmt.Errorf("received date %q: %w", req.ReceivedDate, err)
	}
	dueDate, err := core.ParseDate(req.DueDate)
	if err != nil {
		return core.Job{}, fmt.Errorf("due date %q: %w", req.DueDate, err)
	}
	// A due date before the received date is allowed; intake records
	// whatever the shop agreed to.

	customer, err := s.resolveCustomer(ctx, name, req.ContactInfo)
	if err != nil {
		return core.Job{}, err
	}

	job, err := s.storage.InsertJob(ctx, storage.NewJob{
		CustomerID:   customer.ID,
		Type:         req.Type,
		Size:         req.Size,
		PhotoPath:    req.PhotoPath,
		ReceivedDate: receivedDate,
		DueDate:      dueDate,
		PriceCents:   priceCents,
	})
	if err != nil {
		return core.Job{}, fmt.Errorf("create job: %w", err)
	}

	slog.InfoContext(ctx, "Job intake complete",
		log.FieldComponent, log.ComponentIntake,
		log.FieldJobID, job.ID,
		log.FieldCustomerID, customer.ID,
		log.FieldCustomerName, customer.Name,
		log.FieldDueDate, job.DueDate.String(),
		log.FieldPriceCents, job.Price.Cents)

	return job, nil
}

// resolveCustomer finds a customer by exact name, creating one if absent.
// An existing customer's contact info is never updated here.
func (s *IntakeService) resolveCustomer(ctx context.Context, name, contactInfo string) (core.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.storage.FindCustomerByExactName(ctx, name)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, storage.ErrCustomerNotFound) {
		return core.Customer{}, fmt.Errorf("find customer: %w", err)
	}

	customer, err = s.storage.InsertCustomer(ctx, name, contactInfo)
	if err != nil {
		return core.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// UpdateStatus moves a job to a new cleaning status. The status must be one
// of the four enumerated values; anything else fails validation before the
// store is touched. A missing job surfaces storage.ErrJobNotFound.
func (s *IntakeService) UpdateStatus(ctx context.Context, jobID int64, status string) (core.Job, error) {
	parsed, err := core.ParseStatus(status)
	if err != nil {
		return core.Job{}, fmt.Errorf("status %q: %w", status, err)
	}

	job, err := s.storage.UpdateJobStatus(ctx, jobID, parsed)
	if err != nil {
		return core.Job{}, fmt.Errorf("update status: %w", err)
	}

	slog.InfoContext(ctx, "Job status changed",
		log.FieldComponent, log.ComponentIntake,
		log.FieldJobID, job.ID,
		log.FieldStatus, job.Status.String())

	return job, nil
}
