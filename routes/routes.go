package routes

import (
	"recipe-api/handlers"
	"recipe-api/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Users   *handlers.UserHandler
	Recipes *handlers.RecipeHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, issuer *middleware.TokenIssuer) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/signup", h.Auth.Signup)
		public.POST("/auth/login", h.Auth.Login)

		// Recipes (no auth needed)
		public.GET("/recipes", h.Recipes.List)
		public.GET("/recipes/:id", h.Recipes.Get)
		public.GET("/recipes/user/:userId", h.Recipes.ListByUser)

		// Public profiles
		public.GET("/users/:id", h.Users.GetPublic)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(issuer))
	{
		// Own account
		auth.GET("/users/me", h.Users.GetMe)
		auth.PUT("/users/me", h.Users.UpdateMe)
		auth.PUT("/users/me/password", h.Users.ChangePassword)
		auth.PUT("/users/me/avatar", h.Users.UpdateAvatar)
		auth.DELETE("/users/me", h.Users.DeleteMe)
		auth.GET("/users/me/favorites", h.Users.ListFavorites)

		// Recipe management (ownership enforced per recipe)
		auth.POST("/recipes", h.Recipes.Create)
		auth.PUT("/recipes/:id", h.Recipes.Update)
		auth.DELETE("/recipes/:id", h.Recipes.Delete)

		// Favorites
		auth.POST("/recipes/:id/favorite", h.Recipes.ToggleFavorite)
		auth.GET("/recipes/:id/favorite", h.Recipes.FavoriteStatus)
	}
}
