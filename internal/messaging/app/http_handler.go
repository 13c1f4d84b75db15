package app

import (
	"fmt"
	"sort"
	"strconv"

	"skill_exchange_service/internal/messaging/domain"
	"skill_exchange_service/internal/messaging/repository"
	"skill_exchange_service/pkg/logger"
	"skill_exchange_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HTTPHandler REST surface of the messaging service: conversation history
// and the contact list. Clients treat history as ground truth and the live
// websocket events purely as a low-latency notification layer.
type HTTPHandler struct {
	store     repository.MessageStore
	contacts  repository.ContactDirectory
	summaries repository.SummaryStore
	presence  *PresenceTracker
}

// NewHTTPHandler create HTTPHandler
func NewHTTPHandler(
	store repository.MessageStore,
	contacts repository.ContactDirectory,
	summaries repository.SummaryStore,
	presence *PresenceTracker,
) *HTTPHandler {
	return &HTTPHandler{
		store:     store,
		contacts:  contacts,
		summaries: summaries,
		presence:  presence,
	}
}

// ConversationHistory full message history with one peer
// @Summary Conversation history
// @Description Returns the persisted messages of the conversation with the given peer, oldest first
// @Tags Messaging
// @Produce json
// @Param peerID path string true "Peer user id"
// @Success 200 {array} domain.ChatMessage
// @Failure 400 {object} string "invalid participants"
// @Failure 500 {object} string "history load failed"
// @Router /api/conversations/{peerID}/messages [get]
func (h *HTTPHandler) ConversationHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)
	peerID := c.Params("peerID")

	conversationID, err := domain.ConversationID(userID, peerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	messages, err := h.store.History(c.Context(), conversationID)
	if err != nil {
		logger.Log.Error("history load failed",
			zap.String("conversation_id", conversationID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "history load failed"})
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return c.JSON(messages)
}

// ListContacts contact list with presence and latest-message preview
// @Summary Contact list
// @Description Lists the users the caller may converse with, ordered by latest message time then online status
// @Tags Messaging
// @Produce json
// @Success 200 {array} domain.Contact
// @Failure 500 {object} string "contacts load failed"
// @Router /api/contacts [get]
func (h *HTTPHandler) ListContacts(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)

	contacts, err := h.contacts.ListOthers(c.Context(), userID)
	if err != nil {
		logger.Log.Error("contacts load failed", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "contacts load failed"})
	}

	summaries, err := h.summaries.ListForUser(c.Context(), userID)
	if err != nil {
		// preview is best effort, contacts still render without it
		logger.Log.Warn("summaries load failed", zap.String("user_id", userID), zap.Error(err))
		summaries = nil
	}

	for i := range contacts {
		contacts[i].IsOnline = h.presence.IsOnline(contacts[i].UserID)
		if conversationID, err := domain.ConversationID(userID, contacts[i].UserID); err == nil {
			if summary, ok := summaries[conversationID]; ok {
				contacts[i].LastMessage = summary.LastText
				contacts[i].LastMessageAt = summary.LastSentAt
			}
		}
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].LastMessageAt != contacts[j].LastMessageAt {
			return contacts[i].LastMessageAt > contacts[j].LastMessageAt
		}
		return contacts[i].IsOnline && !contacts[j].IsOnline
	})

	return c.JSON(contacts)
}

// ConnectCheck check service connect
// @Summary Check messaging service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "messaging service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("messaging service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	status, err := strconv.ParseBool(c.Query("status"))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("debug mode is : %t", status))
}
