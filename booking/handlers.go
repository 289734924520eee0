package booking

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"barbearia/globals"
	"barbearia/models"
	"barbearia/mq"
	"barbearia/pages"
	"barbearia/token"

	"github.com/julienschmidt/httprouter"
)

var engine = NewEngine(mongoStore{})

// POST /solicitacoes
func CreateRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"error":"Todos os campos são obrigatórios"}`, http.StatusBadRequest)
		return
	}

	req, err := engine.Submit(ctx, in)
	if errors.Is(err, ErrValidation) {
		http.Error(w, `{"error":"Todos os campos são obrigatórios"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Println("Failed to create request:", err)
		http.Error(w, `{"error":"Erro interno ao processar solicitação"}`, http.StatusInternalServerError)
		return
	}

	go mq.Emit(globals.Ctx, mq.EventRequestSubmitted, *req)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":      req.ID.Hex(),
		"start":   req.Start.Format(time.RFC3339),
		"end":     req.End.Format(time.RFC3339),
		"message": "Solicitação criada com sucesso! Aguarde aprovação do barbeiro.",
	})
}

// GET /solicitacoes
func GetPendingRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requests, err := engine.ListPending(ctx)
	if err != nil {
		log.Println("Failed to list pending requests:", err)
		http.Error(w, `{"error":"Erro ao buscar solicitações"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// GET /agendamentos
func GetAppointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appointments, err := engine.ListConfirmed(ctx)
	if err != nil {
		log.Println("Failed to list appointments:", err)
		http.Error(w, `{"error":"Erro ao buscar agendamentos"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointments)
}

// GET /aprovar/:id/:token
func ApproveRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if !token.Verify(id, ps.ByName("token")) {
		pages.Error(w, http.StatusForbidden, "Token inválido ou expirado")
		return
	}

	appt, err := engine.Approve(ctx, id)
	switch {
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrNotFound):
		pages.Error(w, http.StatusNotFound, "Solicitação não encontrada ou já processada")
		return
	case err != nil:
		log.Println("Failed to approve request:", err)
		pages.Error(w, http.StatusInternalServerError, "Erro ao processar solicitação")
		return
	}

	go mq.Emit(globals.Ctx, mq.EventRequestApproved, requestSnapshot(appt))

	log.Printf("Request %s approved", id)
	pages.Success(w, appt)
}

// GET /rejeitar/:id/:token
func RejectRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if !token.Verify(id, ps.ByName("token")) {
		pages.Error(w, http.StatusForbidden, "Token inválido ou expirado")
		return
	}

	req, err := engine.Reject(ctx, id)
	switch {
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrNotFound):
		pages.Error(w, http.StatusNotFound, "Solicitação não encontrada ou já processada")
		return
	case err != nil:
		log.Println("Failed to reject request:", err)
		pages.Error(w, http.StatusInternalServerError, "Erro ao processar solicitação")
		return
	}

	go mq.Emit(globals.Ctx, mq.EventRequestRejected, *req)

	log.Printf("Request %s rejected", id)
	pages.Rejected(w, req)
}

// requestSnapshot rebuilds the request-shaped payload the notifier
// expects from the materialized appointment.
func requestSnapshot(appt *models.Appointment) models.Request {
	return models.Request{
		Start:       appt.Start,
		End:         appt.End,
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		Service:     appt.Service,
		Status:      models.StatusApproved,
	}
}
