package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"barbearia/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store with the same atomic conditional
// transition the Mongo store provides.
type fakeStore struct {
	mu           sync.Mutex
	requests     map[string]*models.Request
	appointments []models.Appointment
	calls        int
	apptErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{requests: make(map[string]*models.Request)}
}

func (s *fakeStore) InsertRequest(_ context.Context, req *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	req.ID = primitive.NewObjectID()
	cp := *req
	s.requests[req.ID.Hex()] = &cp
	return nil
}

func (s *fakeStore) FindPending(_ context.Context, id string) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	req, ok := s.requests[id]
	if !ok || req.Status != models.StatusPending {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (s *fakeStore) TransitionIfStatus(_ context.Context, id, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	req, ok := s.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	return true, nil
}

func (s *fakeStore) InsertAppointment(_ context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.apptErr != nil {
		err := s.apptErr
		s.apptErr = nil
		return err
	}
	appt.ID = primitive.NewObjectID()
	s.appointments = append(s.appointments, *appt)
	return nil
}

func (s *fakeStore) ListPending(_ context.Context) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Request
	for _, req := range s.requests {
		if req.Status == models.StatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *fakeStore) ListConfirmed(_ context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Appointment{}, s.appointments...), nil
}

func (s *fakeStore) status(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return ""
	}
	return req.Status
}

func (s *fakeStore) apptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

func validInput() SubmitInput {
	return SubmitInput{
		Time:        "2025-06-01T10:00:00Z",
		ClientName:  "Ana",
		ClientPhone: "27999999999",
		Service:     "Corte",
	}
}

func submit(t *testing.T, e *Engine) *models.Request {
	t.Helper()
	req, err := e.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return req
}

func TestSubmitRequiresAllFields(t *testing.T) {
	e := NewEngine(newFakeStore())

	cases := []struct {
		name string
		mod  func(*SubmitInput)
	}{
		{"missing time", func(in *SubmitInput) { in.Time = "" }},
		{"missing name", func(in *SubmitInput) { in.ClientName = "" }},
		{"missing phone", func(in *SubmitInput) { in.ClientPhone = "" }},
		{"missing service", func(in *SubmitInput) { in.Service = "" }},
		{"blank name", func(in *SubmitInput) { in.ClientName = "   " }},
		{"unparseable time", func(in *SubmitInput) { in.Time = "tomorrow at noon" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mod(&in)
			if _, err := e.Submit(context.Background(), in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSubmitFixedHourSlot(t *testing.T) {
	e := NewEngine(newFakeStore())
	req := submit(t, e)

	if req.Status != models.StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}
	want := req.Start.Add(time.Hour)
	if !req.End.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, req.End)
	}
	if req.End.Format(time.RFC3339) != "2025-06-01T11:00:00Z" {
		t.Fatalf("unexpected end %v", req.End)
	}
}

func TestApproveMaterializesAppointment(t *testing.T) {
	store := newFakeStore()
	e := NewEngine(store)
	req := submit(t, e)
	id := req.ID.Hex()

	appt, err := e.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if appt.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", appt.Status)
	}
	if appt.ClientName != req.ClientName || appt.Service != req.Service || !appt.Start.Equal(req.Start) {
		t.Fatalf("appointment does not match request snapshot: %+v", appt)
	}
	if got := store.status(id); got != models.StatusApproved {
		t.Fatalf("expected request approved, got %s", got)
	}
}

func TestApproveTwiceIsNotFound(t *testing.T) {
	store := newFakeStore()
	e := NewEngine(store)
	id := submit(t, e).ID.Hex()

	if _, err := e.Approve(context.Background(), id); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if _, err := e.Approve(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second approve: expected ErrNotFound, got %v", err)
	}
	if store.apptCount() != 1 {
		t.Fatalf("expected exactly one appointment, got %d", store.apptCount())
	}

	// Identical to a request that never existed.
	ghost := primitive.NewObjectID().Hex()
	if _, err := e.Approve(context.Background(), ghost); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ghost approve: expected ErrNotFound, got %v", err)
	}
}

func TestRejectThenApproveIsNotFound(t *testing.T) {
	store := newFakeStore()
	e := NewEngine(store)
	id := submit(t, e).ID.Hex()

	if _, err := e.Reject(context.Background(), id); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got := store.status(id); got != models.StatusRejected {
		t.Fatalf("expected rejected, got %s", got)
	}
	if _, err := e.Approve(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after reject, got %v", err)
	}
	if _, err := e.Reject(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second reject: expected ErrNotFound, got %v", err)
	}
	if store.apptCount() != 0 {
		t.Fatal("reject must not create appointments")
	}
}

func TestConcurrentApproveSingleWinner(t *testing.T) {
	store := newFakeStore()
	e := NewEngine(store)
	id := submit(t, e).ID.Hex()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Approve(context.Background(), id)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNotFound):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning approval, got %d", wins)
	}
	if store.apptCount() != 1 {
		t.Fatalf("expected exactly one appointment, got %d", store.apptCount())
	}
}

func TestApproveRollsBackOnMaterializationFailure(t *testing.T) {
	store := newFakeStore()
	e := NewEngine(store)
	id := submit(t, e).ID.Hex()

	store.apptErr = errors.New("disk on fire")
	if _, err := e.Approve(context.Background(), id); err == nil {
		t.Fatal("expected approve to fail")
	}
	if got := store.status(id); got != models.StatusPending {
		t.Fatalf("expected rollback to pending, got %s", got)
	}
	if store.apptCount() != 0 {
		t.Fatal("no appointment must exist after a failed approval")
	}

	// The same link works again once the store recovers.
	if _, err := e.Approve(context.Background(), id); err != nil {
		t.Fatalf("retry approve: %v", err)
	}
	if store.apptCount() != 1 {
		t.Fatalf("expected one appointment after retry, got %d", store.apptCount())
	}
}

func TestMalformedIDFailsFast(t *testing.T) {
	store := newFakeStore()
	e := NewEngine(store)

	for _, op := range []func(context.Context, string) error{
		func(ctx context.Context, id string) error { _, err := e.Approve(ctx, id); return err },
		func(ctx context.Context, id string) error { _, err := e.Reject(ctx, id); return err },
		func(ctx context.Context, id string) error { _, err := e.FetchPending(ctx, id); return err },
	} {
		if err := op(context.Background(), "not-an-id"); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	}
	if store.calls != 0 {
		t.Fatalf("malformed id must not touch storage, saw %d calls", store.calls)
	}
}
