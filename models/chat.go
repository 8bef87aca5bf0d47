package models

import (
	"time"

	"gorm.io/gorm"
)

type ChatMessage struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	SenderID    uint             `gorm:"not null;index" json:"sender_id"`
	Sender      User             `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Body        string           `gorm:"type:text;not null" json:"body"`
	Attachments []ChatAttachment `gorm:"foreignKey:MessageID" json:"attachments"`
	Reactions   []ChatReaction   `gorm:"foreignKey:MessageID" json:"reactions"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

type ChatAttachment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;index" json:"message_id"`
	URL       string    `gorm:"type:varchar(255);not null" json:"url"`
	MimeType  string    `gorm:"type:varchar(100)" json:"mime_type"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type ChatReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_reaction_msg_user_emoji" json:"message_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reaction_msg_user_emoji" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Emoji     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_reaction_msg_user_emoji" json:"emoji"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
