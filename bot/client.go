// Package bot is the WhatsApp collaborator: a thin client for the
// bridge gateway that holds the actual WhatsApp session. The lifecycle
// code never touches this directly; delivery goes through the
// notification worker and is always best-effort.
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

var ErrNotReady = errors.New("whatsapp session is not ready")

// Status is what the admin panel polls.
type Status struct {
	Ready       bool   `json:"ready"`
	QR          string `json:"qr"`
	PhoneNumber string `json:"phoneNumber"`
}

// Client talks to the gateway over REST and follows its event stream
// over a websocket. The ready flag is owned here; nothing else in the
// process mutates it.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	ready bool
	qr    string
	phone string
}

func New() *Client {
	base := os.Getenv("WHATSAPP_GATEWAY_URL")
	if base == "" {
		base = "http://localhost:3002"
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Start launches the event-stream loop. Returns immediately; the
// session becomes ready whenever the gateway says so.
func (c *Client) Start() {
	go c.listenEvents()
}

// gatewayEvent is what the bridge pushes on the websocket.
type gatewayEvent struct {
	Type   string `json:"type"`
	Code   string `json:"code,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (c *Client) listenEvents() {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/events"
	for {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			log.Println("WhatsApp gateway unreachable:", err)
			c.setDisconnected()
			time.Sleep(5 * time.Second)
			continue
		}
		log.Println("Connected to WhatsApp gateway event stream")

		for {
			var event gatewayEvent
			if err := conn.ReadJSON(&event); err != nil {
				log.Println("Gateway event stream closed:", err)
				break
			}
			c.handleEvent(event)
		}
		conn.Close()
		c.setDisconnected()
		time.Sleep(5 * time.Second)
	}
}

func (c *Client) handleEvent(event gatewayEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case "qr":
		log.Println("QR Code received, scan with WhatsApp")
		c.qr = event.Code
		c.ready = false
	case "authenticated":
		log.Println("WhatsApp session authenticated")
	case "ready":
		log.Println("WhatsApp bot is ready")
		c.ready = true
		c.qr = ""
		c.phone = event.Phone
	case "disconnected":
		log.Println("WhatsApp disconnected:", event.Reason)
		c.ready = false
		c.phone = ""
	}
}

func (c *Client) setDisconnected() {
	c.mu.Lock()
	c.ready = false
	c.phone = ""
	c.mu.Unlock()
}

func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{Ready: c.ready, QR: c.qr, PhoneNumber: c.phone}
}

// QRPNG renders the pending pairing code as a PNG. Only meaningful
// while the gateway is waiting to be paired.
func (c *Client) QRPNG() ([]byte, error) {
	c.mu.RLock()
	code := c.qr
	c.mu.RUnlock()
	if code == "" {
		return nil, errors.New("no pairing code pending")
	}
	return qrcode.Encode(code, qrcode.Medium, 256)
}

var nonDigits = regexp.MustCompile(`\D`)

// formatPhone normalizes a Brazilian number to the chat id the gateway
// expects: digits only, 55 country prefix, @c.us suffix.
func formatPhone(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if !strings.HasPrefix(cleaned, "55") {
		cleaned = "55" + cleaned
	}
	return cleaned + "@c.us"
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway returned %s for %s", resp.Status, path)
	}
	return nil
}

// SendMessage delivers a direct message. Best-effort: the caller logs
// and swallows whatever comes back.
func (c *Client) SendMessage(ctx context.Context, phone, text string) error {
	if !c.Ready() {
		return ErrNotReady
	}
	return c.post(ctx, "/send", map[string]string{
		"chatId":  formatPhone(phone),
		"message": text,
	})
}

// SendGroupMessage posts to the operator group.
func (c *Client) SendGroupMessage(ctx context.Context, groupID, text string) error {
	if !c.Ready() {
		return ErrNotReady
	}
	return c.post(ctx, "/send", map[string]string{
		"chatId":  groupID,
		"message": text,
	})
}

// Disconnect tears the session down without deleting its credentials.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.post(ctx, "/session/logout", nil); err != nil {
		return err
	}
	c.setDisconnected()
	return nil
}

// NewSession wipes the stored credentials; the gateway will emit a
// fresh QR code shortly after.
func (c *Client) NewSession(ctx context.Context) error {
	if err := c.post(ctx, "/session/new", nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.ready = false
	c.qr = ""
	c.phone = ""
	c.mu.Unlock()
	return nil
}

// Reconnect asks the gateway to re-open the session with the stored
// credentials.
func (c *Client) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	c.qr = ""
	c.mu.Unlock()
	return c.post(ctx, "/session/reconnect", nil)
}
