package pages

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"barbearia/models"
)

func TestErrorPage(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, 403, "Token inválido ou expirado")

	if rec.Code != 403 {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Token inválido ou expirado") {
		t.Fatal("error page must show the message")
	}
}

func TestSuccessPage(t *testing.T) {
	start, _ := time.Parse(time.RFC3339, "2025-06-01T10:00:00Z")
	appt := &models.Appointment{
		Start:      start,
		ClientName: "Ana",
		Service:    "Corte",
		Status:     models.StatusConfirmed,
	}

	rec := httptest.NewRecorder()
	Success(rec, appt)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Agendamento Aprovado", "Ana", "Corte", "01/06/2025 10:00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("success page missing %q", want)
		}
	}
}

func TestRejectedPage(t *testing.T) {
	start, _ := time.Parse(time.RFC3339, "2025-06-01T10:00:00Z")
	req := &models.Request{
		Start:      start,
		ClientName: "Ana",
		Service:    "Corte",
		Status:     models.StatusRejected,
	}

	rec := httptest.NewRecorder()
	Rejected(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Agendamento Rejeitado", "Ana", "Corte"} {
		if !strings.Contains(body, want) {
			t.Fatalf("rejected page missing %q", want)
		}
	}
}
