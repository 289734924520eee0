package routes

import (
	"barbearia/booking"
	"barbearia/bot"
	"barbearia/catalog"
	"barbearia/middleware"
	"barbearia/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/solicitacoes", rl.Limit(booking.CreateRequest))
	router.GET("/solicitacoes", booking.GetPendingRequests)
	router.GET("/agendamentos", booking.GetAppointments)

	router.GET("/aprovar/:id/:token", booking.ApproveRequest)
	router.GET("/rejeitar/:id/:token", booking.RejectRequest)

	router.GET("/admin/agenda/pdf", middleware.RequireAdminKey(booking.PrintAgenda))
}

func AddServiceRoutes(router *httprouter.Router) {
	router.GET("/servicos", catalog.GetActiveServices)

	router.GET("/admin/servicos", middleware.RequireAdminKey(catalog.GetAllServices))
	router.POST("/admin/servicos", middleware.RequireAdminKey(catalog.CreateService))
	router.PUT("/admin/servicos/:id", middleware.RequireAdminKey(catalog.UpdateService))
	router.DELETE("/admin/servicos/:id", middleware.RequireAdminKey(catalog.DeleteService))
}

func AddBotRoutes(router *httprouter.Router) {
	router.GET("/whatsapp/status", bot.GetStatus)
	router.GET("/whatsapp/qr", middleware.RequireAdminKey(bot.GetQR))

	router.POST("/whatsapp/disconnect", middleware.RequireAdminKey(bot.Disconnect))
	router.POST("/whatsapp/new-bot", middleware.RequireAdminKey(bot.NewBot))
	router.POST("/whatsapp/reconnect", middleware.RequireAdminKey(bot.Reconnect))
}
