package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Drona-Balasara/ALUMNET/store"
)

// UpdateProfileInput allows partial profile edits.
type UpdateProfileInput struct {
	FirstName      *string  `json:"firstName,omitempty"`
	LastName       *string  `json:"lastName,omitempty"`
	Avatar         *string  `json:"avatar,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Major          *string  `json:"major,omitempty"`
	GraduationYear *int     `json:"graduationYear,omitempty"`
	Company        *string  `json:"company,omitempty"`
	Position       *string  `json:"position,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	LinkedIn       *string  `json:"linkedIn,omitempty"`
	Github         *string  `json:"github,omitempty"`
}

// Me returns the authenticated user's own record.
func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		respondBusinessError(c, err, "USER_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user}, "")
}

// UpdateMe edits the caller's profile fields.
func UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	fields := bson.M{}
	setIf := func(key string, val *string) {
		if val != nil {
			fields["profile."+key] = *val
		}
	}
	setIf("first_name", input.FirstName)
	setIf("last_name", input.LastName)
	setIf("avatar", input.Avatar)
	setIf("bio", input.Bio)
	setIf("major", input.Major)
	setIf("company", input.Company)
	setIf("position", input.Position)
	setIf("location", input.Location)
	setIf("linkedin", input.LinkedIn)
	setIf("github", input.Github)
	if input.GraduationYear != nil {
		fields["profile.graduation_year"] = *input.GraduationYear
	}
	if input.Skills != nil {
		fields["profile.skills"] = input.Skills
	}

	if len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.SetUserFields(ctx, userID, fields); err != nil {
		respondBusinessError(c, err, "USER_NOT_FOUND")
		return
	}

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		respondBusinessError(c, err, "USER_NOT_FOUND")
		return
	}
	respondData(c, http.StatusOK, gin.H{"user": user}, "profile updated")
}

// GetUserProfile returns another user's public profile.
func GetUserProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := store.GetUser(ctx, id)
	if err != nil {
		respondBusinessError(c, err, "USER_NOT_FOUND")
		return
	}
	if !user.IsActive {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":      user.ID.Hex(),
			"role":    user.Role,
			"profile": user.Profile,
		},
	}, "")
}
