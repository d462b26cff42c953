package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route non trouvée")
	})

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupLivreRoutes(api, c)
		setupEmpruntRoutes(api, c)
		setupClientRoutes(api, c)
	}

	return router
}

// ========================================
// LIVRE ROUTES
// ========================================
func setupLivreRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)
	admin := middleware.AdminMiddleware()

	livres := api.Group("/livres")
	{
		livres.GET("", c.LivreHandler.ListLivres)
		livres.GET("/:id", c.LivreHandler.GetLivre)
		livres.GET("/:id/disponibilite", c.LivreHandler.CheckDisponibilite)

		livres.POST("", auth, admin, c.LivreHandler.CreateLivre)
		livres.PUT("/:id", auth, admin, c.LivreHandler.UpdateLivre)
		livres.DELETE("/:id", auth, admin, c.LivreHandler.DeleteLivre)
	}
}

// ========================================
// EMPRUNT ROUTES
// ========================================
func setupEmpruntRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := middleware.AdminMiddleware()

	emprunts := api.Group("/emprunts", middleware.AuthMiddleware(c.JWTManager))
	{
		emprunts.GET("", admin, c.EmpruntHandler.GetAllLoans)
		emprunts.GET("/client/:clientId", c.EmpruntHandler.GetLoansByClient)

		// :id is the livre on create and the emprunt everywhere else
		emprunts.POST("/:id", c.EmpruntHandler.CreateLoan)
		emprunts.GET("/:id", c.EmpruntHandler.GetLoan)
		emprunts.POST("/:id/return", c.EmpruntHandler.ReturnLoan)
		emprunts.PUT("/:id", admin, c.EmpruntHandler.UpdateLoan)
		emprunts.DELETE("/:id", admin, c.EmpruntHandler.DeleteLoan)
	}
}

// ========================================
// CLIENT ROUTES
// ========================================
func setupClientRoutes(api *gin.RouterGroup, c *container.Container) {
	wishlist := api.Group("/clients/wishlist", middleware.AuthMiddleware(c.JWTManager))
	{
		wishlist.GET("", c.ClientHandler.GetWishlist)
		wishlist.POST("/:livreId", c.ClientHandler.AddToWishlist)
		wishlist.DELETE("/:livreId", c.ClientHandler.RemoveFromWishlist)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		services := gin.H{}

		if appCtx.DB == nil {
			services["database"] = "memory"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				services["database"] = "error: " + err.Error()
				status = http.StatusServiceUnavailable
			} else {
				services["database"] = "ok"
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := appCtx.Cache.Ping(ctx); err != nil {
			services["cache"] = "error: " + err.Error()
		} else {
			services["cache"] = "ok"
		}

		data := gin.H{
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		}

		if status != http.StatusOK {
			c.JSON(status, response.Response{Success: false, Message: "Service dégradé", Data: data})
			return
		}
		response.OK(c, "Service opérationnel", data)
	}
}
