package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"barbearia/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrValidation means the submission is missing or malforms a
	// required field. User-fixable.
	ErrValidation = errors.New("missing required fields")

	// ErrInvalidID means the identifier is not a well-formed ObjectID.
	// Raised before any storage call.
	ErrInvalidID = errors.New("invalid request id")

	// ErrNotFound covers both a request that never existed and one
	// already approved or rejected. The two are deliberately
	// indistinguishable: that is what makes the links single-use.
	ErrNotFound = errors.New("request not found or already processed")
)

// Store is the persistence surface the engine needs. TransitionIfStatus
// must be atomic at the storage boundary: the status check and the write
// are one conditional update, so two racing approvals can never both win.
type Store interface {
	InsertRequest(ctx context.Context, req *models.Request) error
	FindPending(ctx context.Context, id string) (*models.Request, error)
	TransitionIfStatus(ctx context.Context, id, from, to string) (bool, error)
	InsertAppointment(ctx context.Context, appt *models.Appointment) error
	ListPending(ctx context.Context) ([]models.Request, error)
	ListConfirmed(ctx context.Context) ([]models.Appointment, error)
}

// Engine owns every Request state transition. It is the sole writer of
// Appointments.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// SubmitInput is the client-facing submission payload.
type SubmitInput struct {
	Time        string `json:"time"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	Service     string `json:"service"`
}

// slotLength is the fixed booking window. The catalog's per-service
// duration is informational only on this path; every request blocks one
// hour.
const slotLength = time.Hour

// Submit validates the payload and persists a pending request.
func (e *Engine) Submit(ctx context.Context, in SubmitInput) (*models.Request, error) {
	if strings.TrimSpace(in.Time) == "" ||
		strings.TrimSpace(in.ClientName) == "" ||
		strings.TrimSpace(in.ClientPhone) == "" ||
		strings.TrimSpace(in.Service) == "" {
		return nil, ErrValidation
	}

	start, err := time.Parse(time.RFC3339, in.Time)
	if err != nil {
		return nil, ErrValidation
	}

	req := &models.Request{
		Start:       start,
		End:         start.Add(slotLength),
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		Service:     in.Service,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	if err := e.store.InsertRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}
	return req, nil
}

// FetchPending returns the request only while it is still pending. A
// request in a terminal state looks exactly like a missing one.
func (e *Engine) FetchPending(ctx context.Context, id string) (*models.Request, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}
	req, err := e.store.FindPending(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find request: %w", err)
	}
	if req == nil {
		return nil, ErrNotFound
	}
	return req, nil
}

// Approve flips the request to approved and materializes the confirmed
// appointment. The status flip is a conditional update, so only one of
// two concurrent approvals acts; the loser sees ErrNotFound. If the
// appointment write fails after the flip, the status is compensated back
// to pending so the link stays retryable.
func (e *Engine) Approve(ctx context.Context, id string) (*models.Appointment, error) {
	req, err := e.FetchPending(ctx, id)
	if err != nil {
		return nil, err
	}

	won, err := e.store.TransitionIfStatus(ctx, id, models.StatusPending, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}
	if !won {
		return nil, ErrNotFound
	}

	appt := &models.Appointment{
		Start:       req.Start,
		End:         req.End,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Service:     req.Service,
		Status:      models.StatusConfirmed,
	}
	if err := e.store.InsertAppointment(ctx, appt); err != nil {
		e.rollback(ctx, id)
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appt, nil
}

// rollback is best-effort compensation, not a transaction. A failure
// leaves the request stuck approved with no appointment; we log and move
// on rather than crash the caller on top of the original error.
func (e *Engine) rollback(ctx context.Context, id string) {
	ok, err := e.store.TransitionIfStatus(ctx, id, models.StatusApproved, models.StatusPending)
	if err != nil {
		log.Printf("Rollback failed for request %s: %v", id, err)
		return
	}
	if !ok {
		log.Printf("Rollback found request %s no longer approved", id)
	}
}

// Reject flips the request to rejected. Single step; nothing to
// compensate since no secondary resource is created.
func (e *Engine) Reject(ctx context.Context, id string) (*models.Request, error) {
	req, err := e.FetchPending(ctx, id)
	if err != nil {
		return nil, err
	}

	won, err := e.store.TransitionIfStatus(ctx, id, models.StatusPending, models.StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("reject request: %w", err)
	}
	if !won {
		return nil, ErrNotFound
	}
	return req, nil
}

// ListPending returns pending requests, newest first.
func (e *Engine) ListPending(ctx context.Context) ([]models.Request, error) {
	return e.store.ListPending(ctx)
}

// ListConfirmed returns confirmed appointments, earliest first.
func (e *Engine) ListConfirmed(ctx context.Context) ([]models.Appointment, error) {
	return e.store.ListConfirmed(ctx)
}
