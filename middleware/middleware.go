package middleware

import (
	"log"
	"net/http"

	"barbearia/globals"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminKey guards the admin surface with the static shared
// secret. The key travels in X-Admin-Key and is checked against the
// bcrypt hash from the environment. No hash configured means the admin
// surface is closed.
func RequireAdminKey(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if globals.AdminKeyHash == "" {
			log.Println("ADMIN_KEY_HASH not set; admin route refused")
			http.Error(w, "Admin access not configured", http.StatusForbidden)
			return
		}

		key := r.Header.Get("X-Admin-Key")
		if key == "" {
			http.Error(w, "Missing admin key", http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(globals.AdminKeyHash), []byte(key)); err != nil {
			http.Error(w, "Invalid admin key", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	}
}
