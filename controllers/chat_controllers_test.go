package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/middlewares"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
)

func setupChatRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	ctrl := NewChatController(db)

	auth := r.Group("/chat")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/messages", ctrl.GetMessages)
		auth.POST("/messages", ctrl.CreateMessage)
		auth.DELETE("/messages/:message_id", ctrl.DeleteMessage)
		auth.POST("/messages/:message_id/reactions", ctrl.AddReaction)
		auth.DELETE("/messages/:message_id/reactions", ctrl.RemoveReaction)
	}

	return r
}

func TestChatMessagesAndPagination(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	r := setupChatRouter(db)
	token := tokenFor(t, user)

	for i := 1; i <= 5; i++ {
		w := doJSON(t, r, http.MethodPost, "/chat/messages", token, gin.H{
			"body": fmt.Sprintf("message %d", i),
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	// Newest first
	w := doJSON(t, r, http.MethodGet, "/chat/messages?limit=2", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 2)
	assert.Equal(t, "message 5", data[0].(map[string]interface{})["body"])

	// Cursor keeps paging backwards
	lastID := data[1].(map[string]interface{})["id"].(float64)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/chat/messages?limit=2&before_id=%.0f", lastID), token, nil)
	data = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 2)
	assert.Equal(t, "message 3", data[0].(map[string]interface{})["body"])
}

func TestChatMessageWithAttachments(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	r := setupChatRouter(db)

	w := doJSON(t, r, http.MethodPost, "/chat/messages", tokenFor(t, user), gin.H{
		"body": "look at this",
		"attachments": []gin.H{
			{"url": "https://cdn.example.com/photo.jpg", "mime_type": "image/jpeg"},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	attachments := data["attachments"].([]interface{})
	assert.Len(t, attachments, 1)
}

func TestDeleteChatMessagePermissions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	other := seedUser(t, db, models.RoleCustomer)
	staff := seedUser(t, db, models.RoleStaff)
	r := setupChatRouter(db)

	w := doJSON(t, r, http.MethodPost, "/chat/messages", tokenFor(t, user), gin.H{"body": "to be removed"})
	assert.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	// Not the sender, not staff
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/chat/messages/%d", id), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Staff may moderate
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/chat/messages/%d", id), tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/chat/messages", tokenFor(t, user), nil)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Empty(t, data)
}

func TestChatReactions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	r := setupChatRouter(db)
	token := tokenFor(t, user)

	w := doJSON(t, r, http.MethodPost, "/chat/messages", token, gin.H{"body": "react to me"})
	assert.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	url := fmt.Sprintf("/chat/messages/%d/reactions", id)

	w = doJSON(t, r, http.MethodPost, url, token, gin.H{"emoji": "🔥"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same emoji again is a no-op, not a duplicate
	w = doJSON(t, r, http.MethodPost, url, token, gin.H{"emoji": "🔥"})
	assert.Equal(t, http.StatusOK, w.Code)
	var count int64
	assert.NoError(t, db.Model(&models.ChatReaction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w = doJSON(t, r, http.MethodDelete, url+"?emoji=🔥", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Removing it twice is a 404
	w = doJSON(t, r, http.MethodDelete, url+"?emoji=🔥", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Reacting to a missing message is a 404
	w = doJSON(t, r, http.MethodPost, "/chat/messages/999/reactions", token, gin.H{"emoji": "🔥"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
