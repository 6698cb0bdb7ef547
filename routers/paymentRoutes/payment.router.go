package paymentRoutes

import (
	paymentControllers "lms/controllers/payment"
	"lms/middleware"
	paymentValidators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/api/payments", middleware.JWTMiddleware)
	paymentGroup.Post("/initiate", paymentValidators.Initiate(), paymentControllers.InitiatePayment)
	paymentGroup.Post("/success", paymentValidators.Confirm(), paymentControllers.ConfirmPayment)

	orderGroup := app.Group("/api/orders", middleware.JWTMiddleware)
	orderGroup.Get("/", paymentControllers.ListOrders)
	orderGroup.Get("/:id", paymentControllers.OrderDetail)

	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Post("/coupons", paymentValidators.CreateCoupon(), paymentControllers.CreateCoupon)
	adminGroup.Get("/coupons", paymentControllers.ListCoupons)
	adminGroup.Patch("/coupons/:id/deactivate", paymentControllers.DeactivateCoupon)
}
