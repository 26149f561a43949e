package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post categories.
const (
	PostGeneral       = "general"
	PostCareer        = "career"
	PostTechnical     = "technical"
	PostNetworking    = "networking"
	PostAnnouncements = "announcements"
)

type Comment struct {
	ID        primitive.ObjectID   `bson:"_id" json:"id"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Content   string               `bson:"content" json:"content"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updatedAt"`
}

// Post is a community post with embedded comments and like sets.
type Post struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Content      string               `bson:"content" json:"content"`
	Author       primitive.ObjectID   `bson:"author" json:"author"`
	Category     string               `bson:"category" json:"category"`
	Tags         []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	Comments     []Comment            `bson:"comments" json:"comments"`
	Likes        []primitive.ObjectID `bson:"likes" json:"likes"`
	Views        int64                `bson:"views" json:"views"`
	IsActive     bool                 `bson:"is_active" json:"isActive"`
	LastActivity time.Time            `bson:"last_activity" json:"lastActivity"`
	Version      int64                `bson:"version" json:"-"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}

func (p *Post) LikeCount() int    { return len(p.Likes) }
func (p *Post) CommentCount() int { return len(p.Comments) }

func (p *Post) HasUserLiked(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike likes the post for a user who hasn't, unlikes otherwise, and
// reports which happened.
func (p *Post) ToggleLike(userID primitive.ObjectID) string {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return "unliked"
		}
	}
	p.Likes = append(p.Likes, userID)
	return "liked"
}

// AddComment appends a comment and bumps the post's activity time.
func (p *Post) AddComment(author primitive.ObjectID, content string, now time.Time) *Comment {
	comment := Comment{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Content:   content,
		Likes:     []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Comments = append(p.Comments, comment)
	p.LastActivity = now
	return &p.Comments[len(p.Comments)-1]
}

func (p *Post) CommentByID(id primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// ToggleCommentLike toggles the caller's like on a comment.
func (p *Post) ToggleCommentLike(commentID, userID primitive.ObjectID) (string, error) {
	comment := p.CommentByID(commentID)
	if comment == nil {
		return "", ErrCommentNotFound
	}
	for i, id := range comment.Likes {
		if id == userID {
			comment.Likes = append(comment.Likes[:i], comment.Likes[i+1:]...)
			return "unliked", nil
		}
	}
	comment.Likes = append(comment.Likes, userID)
	return "liked", nil
}
