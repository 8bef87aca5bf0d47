package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/chat"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

type ChatController struct {
	DB *gorm.DB
}

func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{DB: db}
}

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GetMessages -> newest first, cursor-paged via before_id
func (cc *ChatController) GetMessages(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	query := cc.DB.Preload("Attachments").Preload("Reactions").
		Order("id DESC").Limit(limit)
	if beforeID, err := strconv.Atoi(c.Query("before_id")); err == nil {
		query = query.Where("id < ?", beforeID)
	}

	var messages []models.ChatMessage
	if err := query.Find(&messages).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of messages", messages)
}

// CreateMessage -> post a message, optionally with inline attachments
func (cc *ChatController) CreateMessage(c *gin.Context) {
	var req struct {
		Body        string `json:"body" binding:"required"`
		Attachments []struct {
			URL      string `json:"url" binding:"required"`
			MimeType string `json:"mime_type"`
		} `json:"attachments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message := models.ChatMessage{
		SenderID: currentUserID(c),
		Body:     req.Body,
	}
	for _, a := range req.Attachments {
		message.Attachments = append(message.Attachments, models.ChatAttachment{
			URL:      a.URL,
			MimeType: a.MimeType,
		})
	}

	if err := cc.DB.Create(&message).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	chat.BroadcastMessage(message)
	utils.RespondJSON(c, http.StatusCreated, "Message sent", message)
}

// DeleteMessage -> sender (or staff) soft-deletes a message
func (cc *ChatController) DeleteMessage(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("message_id"))

	var message models.ChatMessage
	if err := cc.DB.First(&message, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("message not found"))
		return
	}
	if message.SenderID != currentUserID(c) && !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, errors.New("message belongs to another user"))
		return
	}

	if err := cc.DB.Delete(&message).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	chat.BroadcastMessageDeleted(message.ID)
	utils.RespondJSON(c, http.StatusOK, "Message deleted", gin.H{"message_id": message.ID})
}

// AddReaction -> one reaction per (message, user, emoji); repeats are no-ops
func (cc *ChatController) AddReaction(c *gin.Context) {
	messageID, _ := strconv.Atoi(c.Param("message_id"))

	var req struct {
		Emoji string `json:"emoji" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var message models.ChatMessage
	if err := cc.DB.First(&message, messageID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("message not found"))
		return
	}

	userID := currentUserID(c)

	var reaction models.ChatReaction
	err := cc.DB.Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, req.Emoji).
		First(&reaction).Error
	if err == nil {
		utils.RespondJSON(c, http.StatusOK, "Reaction already exists", reaction)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	reaction = models.ChatReaction{
		MessageID: uint(messageID),
		UserID:    userID,
		Emoji:     req.Emoji,
	}
	if err := cc.DB.Create(&reaction).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	chat.BroadcastReaction(reaction)
	utils.RespondJSON(c, http.StatusCreated, "Reaction added", reaction)
}

// RemoveReaction -> drop the requesting user's reaction
func (cc *ChatController) RemoveReaction(c *gin.Context) {
	messageID, _ := strconv.Atoi(c.Param("message_id"))
	emoji := c.Query("emoji")
	userID := currentUserID(c)

	result := cc.DB.Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&models.ChatReaction{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("reaction not found"))
		return
	}

	chat.BroadcastReactionRemoved(uint(messageID), userID, emoji)
	utils.RespondJSON(c, http.StatusOK, "Reaction removed", gin.H{"message_id": messageID})
}

// HandleWS -> upgrade to websocket and stream chat events until the client
// disconnects
func (cc *ChatController) HandleWS(c *gin.Context) {
	conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Chat websocket upgrade failed: %v", err)
		return
	}

	userID := currentUserID(c)
	chat.RegisterClient(conn, userID)
	utils.InfoLogger.Printf("Chat client connected (user %d)", userID)

	go func() {
		defer chat.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
