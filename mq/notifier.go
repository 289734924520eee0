package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"barbearia/globals"
	"barbearia/models"
	"barbearia/rdx"
	"barbearia/token"
)

// Dispatcher is the send capability the worker needs from the bot.
type Dispatcher interface {
	SendMessage(ctx context.Context, phone, text string) error
	SendGroupMessage(ctx context.Context, groupID, text string) error
}

// deliveryTimeout bounds each delivery attempt so a stalled gateway
// never wedges the worker. Running out of time is a delivery failure,
// not an error anyone upstream sees.
const deliveryTimeout = 10 * time.Second

// StartNotificationWorker consumes lifecycle events and performs
// best-effort delivery. Failures are logged and swallowed; the state
// transitions behind the events already stand.
func StartNotificationWorker(d Dispatcher) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] Listening for booking events...")

	for msg := range ch {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[NotificationWorker] Failed to parse event: %v", err)
			continue
		}
		deliver(d, event)
	}
}

func deliver(d Dispatcher, event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	req := event.Request
	var err error
	switch event.Type {
	case EventRequestSubmitted:
		if globals.NotificationGroupID == "" {
			return
		}
		err = d.SendGroupMessage(ctx, globals.NotificationGroupID, operatorMessage(req))
	case EventRequestApproved:
		err = d.SendMessage(ctx, req.ClientPhone, approvedMessage(req))
	case EventRequestRejected:
		err = d.SendMessage(ctx, req.ClientPhone, rejectedMessage(req))
	default:
		log.Printf("[NotificationWorker] Unknown event type %q", event.Type)
		return
	}
	if err != nil {
		log.Printf("[NotificationWorker] Delivery failed for %s event %s: %v", event.Type, event.ID, err)
	}
}

func formatStart(req models.Request) string {
	return req.Start.Format("02/01/2006 15:04")
}

// operatorMessage is the group post announcing a new request, with the
// one-click approve/reject links carrying the request's token.
func operatorMessage(req models.Request) string {
	id := req.ID.Hex()
	tok := token.Issue(id)
	approveURL := fmt.Sprintf("http://%s/aprovar/%s/%s", globals.FrontendURL, id, tok)
	rejectURL := fmt.Sprintf("http://%s/rejeitar/%s/%s", globals.FrontendURL, id, tok)

	return "🔔 *Nova Solicitação de Agendamento*\n\n" +
		"📅 Data/Hora: " + formatStart(req) + "\n" +
		"👤 Cliente: " + req.ClientName + "\n" +
		"📱 Telefone: " + req.ClientPhone + "\n" +
		"✂️ Serviço: " + req.Service + "\n\n" +
		"ID: #" + id + "\n\n" +
		"⚡ *APROVAÇÃO RÁPIDA:*\n\n" +
		"✅ Aprovar: " + approveURL + "\n\n" +
		"❌ Rejeitar: " + rejectURL + "\n\n" +
		"Ou acesse o painel admin."
}

func approvedMessage(req models.Request) string {
	return "✅ *Agendamento Confirmado!*\n\n" +
		"Olá " + req.ClientName + "!\n\n" +
		"Seu agendamento foi aprovado:\n" +
		"📅 " + formatStart(req) + "\n" +
		"✂️ " + req.Service + "\n\n" +
		"Nos vemos em breve! 💈"
}

func rejectedMessage(req models.Request) string {
	return "❌ *Agendamento não aprovado*\n\n" +
		"Olá " + req.ClientName + ",\n\n" +
		"Infelizmente não foi possível confirmar seu agendamento para " +
		formatStart(req) + ".\n\n" +
		"Por favor, escolha outro horário disponível."
}
