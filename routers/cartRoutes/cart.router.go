package cartRoutes

import (
	cartControllers "lms/controllers/cart"
	"lms/middleware"
	cartValidators "lms/validators/cart"

	"github.com/gofiber/fiber/v2"
)

func SetupCartRoutes(app *fiber.App) {
	cartGroup := app.Group("/api/cart", middleware.JWTMiddleware)
	cartGroup.Get("/", cartControllers.GetCart)
	cartGroup.Post("/", cartValidators.AddItem(), cartControllers.AddToCart)
	cartGroup.Delete("/:itemId", cartControllers.RemoveFromCart)

	wishlistGroup := app.Group("/api/wishlist", middleware.JWTMiddleware)
	wishlistGroup.Get("/", cartControllers.GetWishlist)
	wishlistGroup.Post("/", cartValidators.AddItem(), cartControllers.AddToWishlist)
	wishlistGroup.Delete("/:itemId", cartControllers.RemoveFromWishlist)
	wishlistGroup.Post("/:itemId/add-to-cart", cartControllers.AddWishlistItemToCart)
}
