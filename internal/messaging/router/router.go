package router

import (
	"context"

	"skill_exchange_service/internal/messaging/app"
	"skill_exchange_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register messaging routes
// @title Skill Exchange Messaging Service API
// @version 1.0
// @description Real-time messaging and presence for the skill exchange platform
// @host localhost:8080
// @BasePath /
func RegisterRoutes(r *fiber.App, wsHandler *app.MessagingWebsocketHandler, httpHandler *app.HTTPHandler) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/", app.ConnectCheck)
	r.Post("/debug", app.DebugLogFlag)

	r.Use("/ws", middlewares.JWTMiddleware())
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHandler.HandleConnection(context.Background(), c)
	}))

	api := r.Group("/api", middlewares.JWTMiddleware())
	api.Get("/contacts", httpHandler.ListContacts)
	api.Get("/conversations/:peerID/messages", httpHandler.ConversationHistory)
}
