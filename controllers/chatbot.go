package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Drona-Balasara/ALUMNET/models"
	"github.com/Drona-Balasara/ALUMNET/store"
)

// ChatMessageInput is a user message to the assistant.
type ChatMessageInput struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// StartChatSession opens a new session for the caller.
func StartChatSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	session := models.ChatSession{
		User:      userID,
		SessionID: uuid.NewString(),
		IsActive:  true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.CreateSession(ctx, &session); err != nil {
		respondError(c, http.StatusInternalServerError, "CHAT_SESSION_ERROR", "could not start session")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"session": session}, "Session started")
}

// PostChatMessage appends a user message to the session transcript. The
// assistant reply is produced out of band; a placeholder acknowledgement is
// logged so the transcript stays coherent.
func PostChatMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input ChatMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var reply models.ChatMessage
	session, err := store.UpdateSession(ctx, c.Param("sessionId"), userID, func(s *models.ChatSession) error {
		if !s.IsActive {
			return store.ErrNotFound
		}
		now := time.Now().UTC()
		s.AddMessage(models.ChatRoleUser, input.Content, now)
		reply = *s.AddMessage(models.ChatRoleAssistant,
			"Thanks for your message. An advisor response will appear here shortly.", now)
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "SESSION_NOT_FOUND")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"reply":        reply,
		"messageCount": len(session.Messages),
	}, "")
}

// GetChatSession returns a session transcript to its owner.
func GetChatSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session, err := store.GetSession(ctx, c.Param("sessionId"), userID)
	if err != nil {
		respondBusinessError(c, err, "SESSION_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{"session": session}, "")
}

// EndChatSession closes a session at the owner's request.
func EndChatSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := store.UpdateSession(ctx, c.Param("sessionId"), userID, func(s *models.ChatSession) error {
		s.End("user_ended", time.Now().UTC())
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "SESSION_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{}, "Session ended")
}

// ChatHistory lists the caller's recent sessions.
func ChatHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessions, err := store.ListUserSessions(ctx, userID, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CHAT_HISTORY_ERROR", "could not fetch chat history")
		return
	}

	respondData(c, http.StatusOK, gin.H{"sessions": sessions}, "")
}
