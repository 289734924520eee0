package globals

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	// LinkSecret feeds the approval-link token encoding. Fixed for the
	// process lifetime; rotating it requires a restart and invalidates
	// every previously issued link.
	LinkSecret = envOr("LINK_SECRET", "barbearia-dev-secret")

	// AdminKeyHash is a bcrypt hash of the static admin shared secret.
	AdminKeyHash = os.Getenv("ADMIN_KEY_HASH")

	// FrontendURL is the host the approve/reject links point at.
	FrontendURL = envOr("FRONTEND_URL", "localhost:3000")

	// NotificationGroupID is the operator group the bot posts new
	// requests to. Empty disables group notifications.
	NotificationGroupID = os.Getenv("NOTIFICATION_GROUP_ID")
)

var Ctx = context.Background()
