package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/m-orlov/pairlist/internal/server/http/handlers"
	"github.com/m-orlov/pairlist/internal/server/http/middleware"
	"github.com/m-orlov/pairlist/internal/server/ws"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PairlistFacade, wsHandler *ws.Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))

	authHandler := handlers.NewAuthHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	pairingHandler := handlers.NewPairingHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	presetHandler := handlers.NewPresetHandler(facade)

	engine.GET("/ws", wsHandler.Serve)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/me", profileHandler.Me)
	userAuth.PATCH("/profile", profileHandler.Update)
	userAuth.POST("/profile/push", profileHandler.RegisterPush)
	userAuth.DELETE("/profile", profileHandler.Delete)

	userAuth.GET("/pair/search", pairingHandler.Search)
	userAuth.GET("/pair/requests", pairingHandler.Requests)
	userAuth.POST("/pair/request", pairingHandler.Request)
	userAuth.POST("/pair/accept", pairingHandler.Accept)
	userAuth.POST("/pair/reject", pairingHandler.Reject)

	userAuth.GET("/orders/pending", orderHandler.PendingReceived)
	userAuth.GET("/orders/sent", orderHandler.PendingSent)
	userAuth.GET("/orders/history/sent", orderHandler.HistorySent)
	userAuth.GET("/orders/history/received", orderHandler.HistoryReceived)
	userAuth.GET("/orders/stats", orderHandler.Stats)

	userAuth.GET("/presets", presetHandler.List)
	userAuth.POST("/presets", presetHandler.Create)
	userAuth.PUT("/presets/:id", presetHandler.Update)
	userAuth.DELETE("/presets/:id", presetHandler.Delete)
	userAuth.POST("/categories", presetHandler.AddCategory)
	userAuth.DELETE("/categories/:name", presetHandler.RemoveCategory)
	userAuth.POST("/items", presetHandler.AddCustomItem)
	userAuth.DELETE("/items/:name", presetHandler.RemoveCustomItem)

	return engine
}
