package supportRoutes

import (
	supportControllers "lms/controllers/support"
	"lms/middleware"
	supportValidators "lms/validators/support"

	"github.com/gofiber/fiber/v2"
)

func SetupSupportRoutes(app *fiber.App) {
	ticketGroup := app.Group("/api/tickets", middleware.JWTMiddleware)
	ticketGroup.Post("/", supportValidators.CreateTicket(), supportControllers.CreateTicket)
	ticketGroup.Get("/", supportValidators.List(), supportControllers.ListTickets)
	ticketGroup.Get("/:id", supportControllers.TicketDetail)
	ticketGroup.Post("/:id/reply", supportValidators.Reply(), supportControllers.Reply)
	ticketGroup.Put("/:id/status", supportValidators.UpdateStatus(), supportControllers.UpdateStatus)
	ticketGroup.Post("/:id/reopen", supportControllers.Reopen)

	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Get("/tickets", supportValidators.List(), supportControllers.ListTickets)
}
