package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Role      string             `bson:"role" json:"role"`
	Content   string             `bson:"content" json:"content"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// ChatSession is the per-user chatbot conversation log. The assistant itself
// lives outside this service; only the transcript is stored here.
type ChatSession struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	SessionID    string             `bson:"session_id" json:"sessionId"`
	Messages     []ChatMessage      `bson:"messages" json:"messages"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	LastActivity time.Time          `bson:"last_activity" json:"lastActivity"`
	EndedAt      *time.Time         `bson:"ended_at,omitempty" json:"endedAt,omitempty"`
	EndReason    string             `bson:"end_reason,omitempty" json:"endReason,omitempty"`
	Version      int64              `bson:"version" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AddMessage appends a message and refreshes the activity timestamp.
func (s *ChatSession) AddMessage(role, content string, now time.Time) *ChatMessage {
	msg := ChatMessage{
		ID:        primitive.NewObjectID(),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
	s.Messages = append(s.Messages, msg)
	s.LastActivity = now
	return &s.Messages[len(s.Messages)-1]
}

// End closes the session with a reason.
func (s *ChatSession) End(reason string, now time.Time) {
	s.IsActive = false
	t := now
	s.EndedAt = &t
	s.EndReason = reason
}
