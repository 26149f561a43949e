package models

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleLike(t *testing.T) {
	p := &Post{Author: primitive.NewObjectID(), Likes: []primitive.ObjectID{}}
	u := primitive.NewObjectID()

	if action := p.ToggleLike(u); action != "liked" {
		t.Errorf("first toggle = %q, want liked", action)
	}
	if !p.HasUserLiked(u) || p.LikeCount() != 1 {
		t.Errorf("like state = (%v, %d), want (true, 1)", p.HasUserLiked(u), p.LikeCount())
	}
	if action := p.ToggleLike(u); action != "unliked" {
		t.Errorf("second toggle = %q, want unliked", action)
	}
	if p.HasUserLiked(u) || p.LikeCount() != 0 {
		t.Errorf("like state = (%v, %d), want (false, 0)", p.HasUserLiked(u), p.LikeCount())
	}
}

func TestAddComment(t *testing.T) {
	p := &Post{Author: primitive.NewObjectID()}
	now := time.Now()
	author := primitive.NewObjectID()

	c := p.AddComment(author, "congrats on the launch", now)
	if c.ID.IsZero() {
		t.Error("comment id should be assigned")
	}
	if p.CommentCount() != 1 {
		t.Errorf("CommentCount = %d, want 1", p.CommentCount())
	}
	if !p.LastActivity.Equal(now) {
		t.Errorf("lastActivity = %v, want %v", p.LastActivity, now)
	}
	if got := p.CommentByID(c.ID); got == nil || got.Content != "congrats on the launch" {
		t.Errorf("CommentByID = %+v", got)
	}
}

func TestToggleCommentLike(t *testing.T) {
	p := &Post{Author: primitive.NewObjectID()}
	c := p.AddComment(primitive.NewObjectID(), "nice", time.Now())
	u := primitive.NewObjectID()

	action, err := p.ToggleCommentLike(c.ID, u)
	if err != nil || action != "liked" {
		t.Fatalf("ToggleCommentLike = (%q, %v), want (liked, nil)", action, err)
	}
	action, err = p.ToggleCommentLike(c.ID, u)
	if err != nil || action != "unliked" {
		t.Fatalf("ToggleCommentLike = (%q, %v), want (unliked, nil)", action, err)
	}
	if _, err := p.ToggleCommentLike(primitive.NewObjectID(), u); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("err = %v, want ErrCommentNotFound", err)
	}
}

func TestChatSession(t *testing.T) {
	s := &ChatSession{User: primitive.NewObjectID(), SessionID: "abc", IsActive: true}
	now := time.Now()

	msg := s.AddMessage(ChatRoleUser, "when is the next career fair?", now)
	if msg.Role != ChatRoleUser || len(s.Messages) != 1 {
		t.Errorf("message = %+v, len = %d", msg, len(s.Messages))
	}
	if !s.LastActivity.Equal(now) {
		t.Errorf("lastActivity = %v, want %v", s.LastActivity, now)
	}

	ended := now.Add(time.Minute)
	s.End("user_ended", ended)
	if s.IsActive {
		t.Error("session should be inactive after End")
	}
	if s.EndedAt == nil || !s.EndedAt.Equal(ended) {
		t.Errorf("endedAt = %v, want %v", s.EndedAt, ended)
	}
	if s.EndReason != "user_ended" {
		t.Errorf("endReason = %q", s.EndReason)
	}
}
