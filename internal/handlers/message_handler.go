package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmalone/microblog/backend/internal/models"
	"github.com/jmalone/microblog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UnreadMessageCountNotification is the notification name used to push the
// recipient's unread count; each send replaces the previous value.
const UnreadMessageCountNotification = "unread_message_count"

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messageRepository      repositories.MessageRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *MessageHandler {
	return &MessageHandler{
		messageRepository:      messageRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages", h.GetInbox)
	g.GET("/messages/sent", h.GetSent)
	g.GET("/messages/unread-count", h.GetUnreadCount)
}

// SendMessage sends a direct message and refreshes the recipient's
// unread-count notification.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.RecipientID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}

	recipient, err := h.userRepository.GetUserByID(req.RecipientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := &models.Message{
		SenderID:    currentUserID,
		RecipientID: recipient.ID,
		Body:        req.Body,
		Timestamp:   time.Now().UTC(),
	}

	if err := h.messageRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.notifyUnreadCount(recipient); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, message.ToDict())
}

// GetInbox lists received messages and advances the read watermark, so
// everything currently in the inbox stops counting as unread.
func (h *MessageHandler) GetInbox(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	now := time.Now().UTC()
	if err := h.userRepository.SetLastMessageRead(currentUserID, now); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	payload, err := models.EncodePayload(0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if _, err := h.notificationRepository.ReplaceByName(currentUserID, UnreadMessageCountNotification, payload); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, perPage := pageParams(c)
	messages, total, err := h.messageRepository.GetReceived(currentUserID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items := make([]models.Dict, len(messages))
	for i := range messages {
		items[i] = messages[i].ToDict()
	}

	return c.JSON(http.StatusOK, collection(items, page, perPage, total, "/api/v1/messages"))
}

// GetSent lists messages sent by the current user
func (h *MessageHandler) GetSent(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, perPage := pageParams(c)
	messages, total, err := h.messageRepository.GetSent(currentUserID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items := make([]models.Dict, len(messages))
	for i := range messages {
		items[i] = messages[i].ToDict()
	}

	return c.JSON(http.StatusOK, collection(items, page, perPage, total, "/api/v1/messages/sent"))
}

// GetUnreadCount returns how many received messages are newer than the
// current user's watermark. Reading this count does not advance it.
func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.messageRepository.UnreadCount(user.ID, user.Watermark())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// notifyUnreadCount recomputes the recipient's unread count against their
// watermark and stores it as a replace-by-name notification.
func (h *MessageHandler) notifyUnreadCount(recipient *models.User) error {
	count, err := h.messageRepository.UnreadCount(recipient.ID, recipient.Watermark())
	if err != nil {
		return err
	}
	payload, err := models.EncodePayload(count)
	if err != nil {
		return err
	}
	_, err = h.notificationRepository.ReplaceByName(recipient.ID, UnreadMessageCountNotification, payload)
	return err
}
