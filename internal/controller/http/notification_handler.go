package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"billtrack/internal/hub"
	"billtrack/internal/usecase"
	"billtrack/pkg/jwt"
	"billtrack/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	hub                 *hub.Hub
	jwtService          *jwt.Service
	logger              *logger.Logger
}

func NewNotificationHandler(
	notificationUseCase usecase.NotificationUseCase,
	connectionHub *hub.Hub,
	jwtService *jwt.Service,
	logger *logger.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		hub:                 connectionHub,
		jwtService:          jwtService,
		logger:              logger,
	}
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Get the authenticated user's notifications, newest first
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max results (default 50, max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	notifications, totalCount, err := h.notificationUseCase.GetNotifications(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total_count":   totalCount,
		"limit":         limit,
		"offset":        offset,
	})
}

// TriggerEvaluation godoc
// @Summary      Run reminder evaluation now
// @Description  Run one reminder evaluation pass immediately instead of waiting for the scheduler
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/evaluate [post]
func (h *NotificationHandler) TriggerEvaluation(c *gin.Context) {
	emitted, err := h.notificationUseCase.EvaluateReminders(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Evaluation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Evaluation completed",
		"emitted": emitted,
	})
}

const wsWriteTimeout = 10 * time.Second

// wsChannel wraps a websocket connection so concurrent pushes never interleave
// on the same underlying writer. Writes carry a deadline so a wedged client
// cannot stall the evaluation pass that is pushing to it.
type wsChannel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (ch *wsChannel) WriteText(message string) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if err := ch.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return ch.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// HandleWebSocket godoc
// @Summary      Open a notification channel
// @Description  Upgrade to WebSocket and receive reminder pushes. Pass the JWT as a token query parameter.
// @Tags         notifications
// @Param        token query string true "JWT access token"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  map[string]string
// @Router       /notifications/ws [get]
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token query parameter is required"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket for user %s: %v", userID, err)
		return
	}

	channel := &wsChannel{conn: conn}
	h.hub.Register(userID, channel)
	h.logger.Info("User %s connected, %d active channels", userID, h.hub.ConnectionCount(userID))

	defer func() {
		h.hub.Unregister(userID, channel)
		conn.Close()
		h.logger.Info("User %s disconnected, %d active channels", userID, h.hub.ConnectionCount(userID))
	}()

	// Clients only receive; the read loop exists to notice disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
