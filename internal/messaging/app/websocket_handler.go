package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skill_exchange_service/internal/messaging/domain"
	"skill_exchange_service/internal/messaging/repository"
	"skill_exchange_service/pkg/logger"
	"skill_exchange_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// MessagingWebsocketHandler dispatches inbound websocket events to the
// messaging core components
type MessagingWebsocketHandler struct {
	registry *ConnectionRegistry
	presence *PresenceTracker
	rooms    *RoomManager
	typing   *TypingCoordinator
	relay    *MessageRelay
	bus      repository.PubSub
}

// NewMessagingWebsocketHandler create MessagingWebsocketHandler
func NewMessagingWebsocketHandler(
	registry *ConnectionRegistry,
	presence *PresenceTracker,
	rooms *RoomManager,
	typing *TypingCoordinator,
	relay *MessageRelay,
	bus repository.PubSub,
) *MessagingWebsocketHandler {
	return &MessagingWebsocketHandler{
		registry: registry,
		presence: presence,
		rooms:    rooms,
		typing:   typing,
		relay:    relay,
		bus:      bus,
	}
}

// clientSession per-connection dispatch state. Only the read loop touches
// it, so no locking beyond what Connection itself does.
type clientSession struct {
	conn      *Connection
	ctx       context.Context
	announced bool
}

// wsEventWriter serializes writes to one websocket connection
type wsEventWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsEventWriter) WriteEvent(resp domain.WSResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, b)
}

// HandleConnection entry point of a websocket connection
func (h *MessagingWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUser := conn.Locals(middlewares.TokenUserID)
	tokenUserID, _ := tokenUser.(string)

	sessConn := NewConnection(&wsEventWriter{conn: conn})
	logger.Log.Info("websocket connected",
		zap.String("user_id", tokenUserID), zap.String("connection_id", sessConn.ID))

	ticker := time.NewTicker(30 * time.Second)
	ctxClose, cancel := context.WithCancel(context.Background())
	sess := &clientSession{conn: sessConn, ctx: ctxClose}

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close",
			zap.String("user_id", tokenUserID), zap.String("connection_id", sessConn.ID))
		h.teardown(sess)
		conn.Close()
		cancel()
	}()

	// fiber answers close frames itself; the handler only logs
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// keepalive ping; a dead peer surfaces as a read error
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, sess, tokenUserID, mt, message)
	}
}

// teardown disconnect cleanup: typing state, room membership, registration.
// The offline presence transition fires from Unregister when this was the
// user's last connection.
func (h *MessagingWebsocketHandler) teardown(sess *clientSession) {
	userID := sess.conn.UserID()
	if room := h.rooms.LeaveAll(sess.conn.ID); room != "" && userID != "" {
		h.typing.NotifyStopped(sess.conn.ID, room, userID)
	}
	sess.conn.CancelRoom()
	h.registry.Unregister(sess.conn.ID)
}

func (h *MessagingWebsocketHandler) execWebsocketAction(ctx context.Context, sess *clientSession, tokenUserID string, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, sess, tokenUserID, msg)

	default:
		h.sendError(sess, "unknown message type")
	}
}

func (h *MessagingWebsocketHandler) textMessageAction(ctx context.Context, sess *clientSession, tokenUserID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		h.sendError(sess, "malformed request")
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {

	case string(domain.AnnounceOnline):
		if req.UserID == "" || req.UserID != tokenUserID {
			resp.Error = "identity mismatch"
			break
		}
		if err := h.registry.Register(sess.conn, tokenUserID); err != nil {
			resp.Error = err.Error()
			break
		}
		// presence deltas and per-user events for the lifetime of the
		// connection; a repeated announce on the same connection is a no-op
		if !sess.announced {
			sess.announced = true
			h.subscribe(sess, repository.PresenceChannel())
			h.subscribe(sess, repository.UserChannel(tokenUserID))
		}
		resp.Success = true
		resp.Payload["user_id"] = tokenUserID

	case string(domain.RequestPresenceSnapshot):
		if !h.registry.IsRegistered(sess.conn.ID) {
			resp.Error = "not registered"
			break
		}
		resp.Action = string(domain.PresenceSnapshot)
		resp.Success = true
		resp.Payload["online_user_ids"] = h.presence.Snapshot()

	case string(domain.JoinConversation):
		if !h.registry.IsRegistered(sess.conn.ID) {
			resp.Error = "not registered"
			break
		}
		if !domain.IsParticipant(req.ConversationID, tokenUserID) {
			resp.Error = "not a participant"
			break
		}
		previous, changed := h.rooms.Join(sess.conn.ID, req.ConversationID)
		if changed {
			if previous != "" {
				h.typing.NotifyStopped(sess.conn.ID, previous, tokenUserID)
			}
			roomCtx, cancelRoom := context.WithCancel(sess.ctx)
			sess.conn.SetRoomCancel(cancelRoom)
			if err := h.bus.Subscribe(roomCtx, repository.RoomChannel(req.ConversationID), sess.conn.Deliver); err != nil {
				logger.Log.Error("room subscribe failed",
					zap.String("conversation_id", req.ConversationID), zap.Error(err))
				resp.Error = "join failed"
				break
			}
		}
		resp.Success = true
		resp.Payload["conversation_id"] = req.ConversationID

	case string(domain.LeaveConversation):
		if h.rooms.Leave(sess.conn.ID, req.ConversationID) {
			sess.conn.CancelRoom()
			h.typing.NotifyStopped(sess.conn.ID, req.ConversationID, tokenUserID)
		}
		resp.Success = true
		resp.Payload["conversation_id"] = req.ConversationID

	case string(domain.SendMessage):
		if !h.registry.IsRegistered(sess.conn.ID) {
			resp.Error = "not registered"
			break
		}
		sent, err := h.relay.Send(ctx, sess.conn.ID, tokenUserID, req.RecipientID, req.Text)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Success = true
		resp.Payload["message_id"] = sent.ID
		resp.Payload["conversation_id"] = sent.ConversationID
		resp.Payload["sent_at"] = sent.SentAt

	case string(domain.Typing):
		if room, ok := h.rooms.ActiveRoom(sess.conn.ID); !ok || room != req.ConversationID {
			resp.Error = "not in conversation"
			break
		}
		h.typing.NotifyTyping(sess.conn.ID, req.ConversationID, tokenUserID)
		resp.Success = true

	case string(domain.StoppedTyping):
		// idempotent even after leaving the room: the coordinator treats a
		// stray stop as a no-op
		h.typing.NotifyStopped(sess.conn.ID, req.ConversationID, tokenUserID)
		resp.Success = true

	default:
		h.sendError(sess, "unknown action")
		return
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ",
			zap.String("user_id", tokenUserID),
			zap.String("action", req.Action),
			zap.String("err", resp.Error))
	}
	h.sendResponse(sess, resp)
}

// subscribe bind a bus channel to the connection for its lifetime
func (h *MessagingWebsocketHandler) subscribe(sess *clientSession, channel string) {
	if err := h.bus.Subscribe(sess.ctx, channel, sess.conn.Deliver); err != nil {
		logger.Log.Error("subscribe failed", zap.String("channel", channel), zap.Error(err))
	}
}

// sendResponse send JSON back to the client
func (h *MessagingWebsocketHandler) sendResponse(sess *clientSession, resp domain.WSResponse) {
	if err := sess.conn.Send(resp); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *MessagingWebsocketHandler) sendError(sess *clientSession, errorMsg string) {
	h.sendResponse(sess, domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{
			"error": errorMsg,
		},
	})
}
