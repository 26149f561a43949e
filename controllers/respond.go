package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Drona-Balasara/ALUMNET/models"
	"github.com/Drona-Balasara/ALUMNET/store"
)

// respondData writes the success envelope.
func respondData(c *gin.Context, status int, data gin.H, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondError writes the failure envelope with a stable machine-readable
// code.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// Business errors map to 4xx with stable codes; anything unmapped is a
// logged 500 and never leaks internals.
var errorMappings = []errorMapping{
	{models.ErrAlreadyRegistered, http.StatusBadRequest, "ALREADY_REGISTERED"},
	{models.ErrRegistrationClosed, http.StatusBadRequest, "REGISTRATION_CLOSED"},
	{models.ErrNotRegistered, http.StatusBadRequest, "NOT_REGISTERED"},
	{models.ErrInvalidLocation, http.StatusBadRequest, "INVALID_LOCATION"},
	{models.ErrInvalidFeedback, http.StatusBadRequest, "INVALID_FEEDBACK"},
	{models.ErrJobExpired, http.StatusBadRequest, "JOB_EXPIRED"},
	{models.ErrApplicationDeadlinePassed, http.StatusBadRequest, "APPLICATION_DEADLINE_PASSED"},
	{models.ErrAlreadyApplied, http.StatusBadRequest, "ALREADY_APPLIED"},
	{models.ErrCannotApplyOwnJob, http.StatusBadRequest, "CANNOT_APPLY_OWN_JOB"},
	{models.ErrApplicationNotFound, http.StatusNotFound, "APPLICATION_NOT_FOUND"},
	{models.ErrInvalidApplicationStatus, http.StatusBadRequest, "INVALID_APPLICATION_STATUS"},
	{models.ErrInvalidSalaryRange, http.StatusBadRequest, "INVALID_SALARY_RANGE"},
	{models.ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
}

// respondBusinessError maps a core-operation error onto the wire.
// notFoundCode names the resource for store.ErrNotFound (e.g. EVENT_NOT_FOUND).
func respondBusinessError(c *gin.Context, err error, notFoundCode string) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, notFoundCode, "resource not found")
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			respondError(c, m.status, m.code, m.err.Error())
			return
		}
	}
	log.Printf("internal error: %v", err)
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong")
}

// currentUserID reads the principal set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	hex := c.GetString("userID")
	if hex == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// pagination builds the listing envelope's pagination block.
func pagination(page, limit, total int64) gin.H {
	totalPages := (total + limit - 1) / limit
	return gin.H{
		"currentPage":  page,
		"totalPages":   totalPages,
		"totalItems":   total,
		"itemsPerPage": limit,
		"hasNextPage":  page < totalPages,
		"hasPrevPage":  page > 1,
	}
}
