package booking

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"barbearia/db"
	"barbearia/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /admin/agenda/pdf?date=YYYY-MM-DD
//
// Renders the day's confirmed appointments as a printable PDF for the
// counter. Date defaults to today.
func PrintAgenda(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	day := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			http.Error(w, `{"error":"Data inválida, use YYYY-MM-DD"}`, http.StatusBadRequest)
			return
		}
		day = parsed
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cur, err := db.AppointmentsCollection.Find(ctx, bson.M{
		"status": models.StatusConfirmed,
		"start":  bson.M{"$gte": dayStart, "$lt": dayEnd},
	}, opts)
	if err != nil {
		log.Println("Failed to fetch agenda:", err)
		http.Error(w, `{"error":"Erro ao buscar agendamentos"}`, http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var appointments []models.Appointment
	if err := cur.All(ctx, &appointments); err != nil {
		log.Println("Failed to decode agenda:", err)
		http.Error(w, `{"error":"Erro ao buscar agendamentos"}`, http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Agenda - "+dayStart.Format("02/01/2006"))
	pdf.Ln(14)

	if len(appointments) == 0 {
		pdf.SetFont("Arial", "I", 12)
		pdf.Cell(0, 10, "Nenhum agendamento confirmado para este dia.")
	}

	pdf.SetFont("Arial", "", 12)
	for _, appt := range appointments {
		line := fmt.Sprintf("%s - %s  |  %s  |  %s  |  %s",
			appt.Start.Format("15:04"),
			appt.End.Format("15:04"),
			appt.ClientName,
			appt.Service,
			appt.ClientPhone,
		)
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("Failed to generate agenda PDF:", err)
		http.Error(w, `{"error":"Erro ao gerar PDF"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=agenda-%s.pdf", dayStart.Format("2006-01-02")))
	w.Write(buf.Bytes())
}
