package mq

import (
	"context"
	"strings"
	"testing"
	"time"

	"barbearia/models"
	"barbearia/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleRequest() models.Request {
	start, _ := time.Parse(time.RFC3339, "2025-06-01T10:00:00Z")
	return models.Request{
		ID:          primitive.NewObjectID(),
		Start:       start,
		End:         start.Add(time.Hour),
		ClientName:  "Ana",
		ClientPhone: "27999999999",
		Service:     "Corte",
		Status:      models.StatusPending,
	}
}

func TestOperatorMessageCarriesTokenLinks(t *testing.T) {
	req := sampleRequest()
	msg := operatorMessage(req)

	id := req.ID.Hex()
	tok := token.Issue(id)
	if !strings.Contains(msg, "/aprovar/"+id+"/"+tok) {
		t.Fatal("operator message must embed the approve link")
	}
	if !strings.Contains(msg, "/rejeitar/"+id+"/"+tok) {
		t.Fatal("operator message must embed the reject link")
	}
	for _, want := range []string{"Ana", "27999999999", "Corte", "01/06/2025 10:00"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("operator message missing %q:\n%s", want, msg)
		}
	}
}

func TestClientMessages(t *testing.T) {
	req := sampleRequest()

	approved := approvedMessage(req)
	for _, want := range []string{"Ana", "Corte", "01/06/2025 10:00", "aprovado"} {
		if !strings.Contains(approved, want) {
			t.Fatalf("approved message missing %q", want)
		}
	}

	rejected := rejectedMessage(req)
	for _, want := range []string{"Ana", "01/06/2025 10:00", "não aprovado"} {
		if !strings.Contains(rejected, want) {
			t.Fatalf("rejected message missing %q", want)
		}
	}
}

type fakeDispatcher struct {
	direct []string
	group  []string
}

func (d *fakeDispatcher) SendMessage(_ context.Context, phone, text string) error {
	d.direct = append(d.direct, phone+": "+text)
	return nil
}

func (d *fakeDispatcher) SendGroupMessage(_ context.Context, groupID, text string) error {
	d.group = append(d.group, groupID+": "+text)
	return nil
}

func TestDeliverRoutesByEventType(t *testing.T) {
	req := sampleRequest()
	d := &fakeDispatcher{}

	deliver(d, Event{ID: "e1", Type: EventRequestApproved, Request: req})
	deliver(d, Event{ID: "e2", Type: EventRequestRejected, Request: req})
	deliver(d, Event{ID: "e3", Type: "something-else", Request: req})

	if len(d.direct) != 2 {
		t.Fatalf("expected 2 direct deliveries, got %d", len(d.direct))
	}
	if !strings.HasPrefix(d.direct[0], req.ClientPhone) {
		t.Fatalf("approved message must target the client phone: %s", d.direct[0])
	}
	if len(d.group) != 0 {
		t.Fatalf("no group delivery expected without a configured group, got %d", len(d.group))
	}
}
