package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Drona-Balasara/ALUMNET/models"
	"github.com/Drona-Balasara/ALUMNET/store"
)

// CreatePostInput is the request body for a community post.
type CreatePostInput struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Content  string   `json:"content" binding:"required,max=5000"`
	Category string   `json:"category" binding:"required,oneof=general career technical networking announcements"`
	Tags     []string `json:"tags,omitempty"`
}

// CommentInput is the request body for a comment.
type CommentInput struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// CreatePost publishes a community post by the caller.
func CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	authorID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	post := models.Post{
		Title:    input.Title,
		Content:  input.Content,
		Author:   authorID,
		Category: input.Category,
		Tags:     input.Tags,
		IsActive: true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.CreatePost(ctx, &post); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_POST_ERROR", "could not create post")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"post": post}, "Post created successfully")
}

// ListPosts returns the community feed, most recently active first.
func ListPosts(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	posts, total, err := store.ListPosts(ctx, store.PostListOptions{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "GET_POSTS_ERROR", "could not fetch posts")
		return
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	respondData(c, http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": pagination(page, limit, total),
	}, "")
}

// GetPost fetches a single post and counts the view.
func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	post, err := store.GetPost(ctx, postID)
	if err != nil {
		respondBusinessError(c, err, "POST_NOT_FOUND")
		return
	}
	if !post.IsActive {
		respondError(c, http.StatusNotFound, "POST_NOT_FOUND", "post not found")
		return
	}

	_ = store.IncrementPostViews(ctx, postID)

	data := gin.H{
		"post":         post,
		"likeCount":    post.LikeCount(),
		"commentCount": post.CommentCount(),
	}
	if userID, authed := currentUserID(c); authed {
		data["hasLiked"] = post.HasUserLiked(userID)
	}
	respondData(c, http.StatusOK, data, "")
}

// AddComment appends a comment to a post.
func AddComment(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var created models.Comment
	_, err = store.UpdatePost(ctx, postID, func(p *models.Post) error {
		if !p.IsActive {
			return store.ErrNotFound
		}
		created = *p.AddComment(userID, input.Content, time.Now().UTC())
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "POST_NOT_FOUND")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"comment": created}, "Comment added")
}

// ToggleLike likes or unlikes a post for the caller.
func ToggleLike(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var action string
	post, err := store.UpdatePost(ctx, postID, func(p *models.Post) error {
		if !p.IsActive {
			return store.ErrNotFound
		}
		action = p.ToggleLike(userID)
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "POST_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"action":    action,
		"likeCount": post.LikeCount(),
	}, "")
}

// ToggleCommentLike likes or unlikes a comment for the caller.
func ToggleCommentLike(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid post id")
		return
	}
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid comment id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var action string
	_, err = store.UpdatePost(ctx, postID, func(p *models.Post) error {
		if !p.IsActive {
			return store.ErrNotFound
		}
		a, err := p.ToggleCommentLike(commentID, userID)
		if err != nil {
			return err
		}
		action = a
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "POST_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{"action": action}, "")
}
