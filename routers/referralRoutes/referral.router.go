package referralRoutes

import (
	referralControllers "lms/controllers/referral"
	"lms/middleware"
	referralValidators "lms/validators/referral"

	"github.com/gofiber/fiber/v2"
)

func SetupReferralRoutes(app *fiber.App) {
	referralGroup := app.Group("/api/referrals", middleware.JWTMiddleware)
	referralGroup.Get("/stats", referralControllers.ReferralStats)
	referralGroup.Get("/earnings", referralControllers.EarningsList)
	referralGroup.Post("/withdraw", referralValidators.Withdraw(), referralControllers.RequestWithdrawal)
	referralGroup.Get("/withdrawals", referralControllers.WithdrawalList)

	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Get("/withdrawals", referralControllers.AdminWithdrawalList)
	adminGroup.Put("/withdrawals/:id", referralValidators.Process(), referralControllers.ProcessWithdrawal)
}
