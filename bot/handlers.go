package bot

import (
	"context"
	"log"
	"net/http"
	"time"

	"barbearia/utils"

	"github.com/julienschmidt/httprouter"
)

// Default is the process-wide gateway client, set by Init from main.
var Default *Client

func Init() *Client {
	Default = New()
	Default.Start()
	return Default
}

func sessionCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 15*time.Second)
}

// GET /whatsapp/status
func GetStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, Default.Status())
}

// GET /whatsapp/qr
func GetQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	png, err := Default.QRPNG()
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Nenhum QR Code pendente")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// POST /whatsapp/disconnect
func Disconnect(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := sessionCtx(r)
	defer cancel()

	if err := Default.Disconnect(ctx); err != nil {
		log.Println("Failed to disconnect bot:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "error": err.Error()})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Bot desconectado"})
}

// POST /whatsapp/new-bot
func NewBot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := sessionCtx(r)
	defer cancel()

	if err := Default.NewSession(ctx); err != nil {
		log.Println("Failed to reset bot session:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "error": err.Error()})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Sessão antiga removida. Novo QR Code será gerado em instantes.",
	})
}

// POST /whatsapp/reconnect
func Reconnect(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := sessionCtx(r)
	defer cancel()

	if err := Default.Reconnect(ctx); err != nil {
		log.Println("Failed to reconnect bot:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "error": err.Error()})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Reconectando bot..."})
}
