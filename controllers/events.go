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

// CreateEventInput is the request body for creating an event.
type CreateEventInput struct {
	Title                string               `json:"title" binding:"required,max=100"`
	Description          string               `json:"description" binding:"required,max=2000"`
	Type                 string               `json:"type" binding:"required,oneof=networking workshop seminar social career-fair webinar"`
	Date                 time.Time            `json:"date" binding:"required"`
	EndDate              *time.Time           `json:"endDate,omitempty"`
	Location             models.EventLocation `json:"location" binding:"required"`
	Capacity             int                  `json:"capacity,omitempty"`
	Tags                 []string             `json:"tags,omitempty"`
	IsPublic             *bool                `json:"isPublic,omitempty"`
	RegistrationDeadline *time.Time           `json:"registrationDeadline,omitempty"`
}

// UpdateEventInput allows partial updates by the organizer.
type UpdateEventInput struct {
	Title                *string               `json:"title,omitempty"`
	Description          *string               `json:"description,omitempty"`
	Type                 *string               `json:"type,omitempty"`
	Date                 *time.Time            `json:"date,omitempty"`
	EndDate              *time.Time            `json:"endDate,omitempty"`
	Location             *models.EventLocation `json:"location,omitempty"`
	Capacity             *int                  `json:"capacity,omitempty"`
	Tags                 []string              `json:"tags,omitempty"`
	IsPublic             *bool                 `json:"isPublic,omitempty"`
	RegistrationDeadline *time.Time            `json:"registrationDeadline,omitempty"`
}

// CreateEvent creates a new event. Alumni only; the caller becomes the
// organizer.
func CreateEvent(c *gin.Context) {
	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	organizerID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	now := time.Now().UTC()
	if !input.Date.After(now) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "event date must be in the future")
		return
	}
	if input.EndDate != nil && !input.EndDate.After(input.Date) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "end date must be after start date")
		return
	}
	if input.RegistrationDeadline != nil && input.RegistrationDeadline.After(input.Date) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "registration deadline must be before event date")
		return
	}
	if input.Capacity < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "capacity cannot be negative")
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	event := models.Event{
		Title:                input.Title,
		Description:          input.Description,
		Type:                 input.Type,
		Date:                 input.Date,
		EndDate:              input.EndDate,
		Location:             input.Location,
		Capacity:             input.Capacity,
		Organizer:            organizerID,
		Tags:                 input.Tags,
		IsPublic:             isPublic,
		RegistrationDeadline: input.RegistrationDeadline,
		IsActive:             true,
	}

	if err := event.ValidateLocation(); err != nil {
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.CreateEvent(ctx, &event); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_EVENT_ERROR", "could not create event")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"event": event}, "Event created successfully")
}

// ListEvents returns upcoming public events. Authenticated callers get their
// registration and waitlist flags per event.
func ListEvents(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, total, err := store.ListUpcomingEvents(ctx, store.EventListOptions{
		Type:  c.Query("type"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "GET_EVENTS_ERROR", "could not fetch events")
		return
	}

	userID, authed := currentUserID(c)
	list := make([]gin.H, 0, len(events))
	for i := range events {
		ev := &events[i]
		item := gin.H{
			"event":             ev,
			"registrationCount": ev.RegistrationCount(),
			"availableSpots":    ev.AvailableSpots(),
			"isFull":            ev.IsFull(),
		}
		if authed {
			item["isRegistered"] = ev.IsUserRegistered(userID)
			item["isOnWaitlist"] = ev.IsUserOnWaitlist(userID)
		}
		list = append(list, item)
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	respondData(c, http.StatusOK, gin.H{
		"events":     list,
		"pagination": pagination(page, limit, total),
	}, "")
}

// GetEvent fetches a single event and counts the view.
func GetEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev, err := store.GetEvent(ctx, eventID)
	if err != nil {
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}
	if !ev.IsActive {
		respondError(c, http.StatusNotFound, "EVENT_NOT_FOUND", "event not found")
		return
	}

	_ = store.IncrementEventViews(ctx, eventID)

	data := gin.H{
		"event":             ev,
		"registrationCount": ev.RegistrationCount(),
		"availableSpots":    ev.AvailableSpots(),
		"isFull":            ev.IsFull(),
		"registrationOpen":  ev.RegistrationOpen(time.Now().UTC()),
	}
	if userID, authed := currentUserID(c); authed {
		data["isRegistered"] = ev.IsUserRegistered(userID)
		data["isOnWaitlist"] = ev.IsUserOnWaitlist(userID)
	}
	respondData(c, http.StatusOK, data, "")
}

// UpdateEvent edits an event; only the organizer may do so.
func UpdateEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid event id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notOwner := false
	ev, err := store.UpdateEvent(ctx, eventID, func(ev *models.Event) error {
		if ev.Organizer != userID {
			notOwner = true
			return store.ErrNotFound
		}
		if input.Title != nil {
			ev.Title = *input.Title
		}
		if input.Description != nil {
			ev.Description = *input.Description
		}
		if input.Type != nil {
			ev.Type = *input.Type
		}
		if input.Date != nil {
			ev.Date = *input.Date
		}
		if input.EndDate != nil {
			ev.EndDate = input.EndDate
		}
		if input.Location != nil {
			ev.Location = *input.Location
		}
		if input.Capacity != nil {
			ev.Capacity = *input.Capacity
		}
		if input.Tags != nil {
			ev.Tags = input.Tags
		}
		if input.IsPublic != nil {
			ev.IsPublic = *input.IsPublic
		}
		if input.RegistrationDeadline != nil {
			ev.RegistrationDeadline = input.RegistrationDeadline
		}
		return ev.ValidateLocation()
	})
	if err != nil {
		if notOwner {
			respondError(c, http.StatusForbidden, "NOT_AUTHORIZED", "only the organizer can modify this event")
			return
		}
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{"event": ev}, "Event updated successfully")
}

// DeleteEvent soft-retires an event; only the organizer may do so.
func DeleteEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid event id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notOwner := false
	_, err = store.UpdateEvent(ctx, eventID, func(ev *models.Event) error {
		if ev.Organizer != userID {
			notOwner = true
			return store.ErrNotFound
		}
		ev.IsActive = false
		return nil
	})
	if err != nil {
		if notOwner {
			respondError(c, http.StatusForbidden, "NOT_AUTHORIZED", "only the organizer can delete this event")
			return
		}
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{}, "Event deleted successfully")
}

// RegisterForEvent registers the caller, waitlisting them when the event is
// at capacity.
func RegisterForEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid event id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result models.RegistrationResult
	_, err = store.UpdateEvent(ctx, eventID, func(ev *models.Event) error {
		if !ev.IsActive {
			return store.ErrNotFound
		}
		r, err := ev.RegisterUser(userID, time.Now().UTC())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}

	message := "Registered successfully"
	if result.Status == models.StatusWaitlisted {
		message = "Added to waitlist"
	}
	respondData(c, http.StatusOK, gin.H{"status": result.Status}, message)
}

// UnregisterFromEvent removes the caller from the attendee list, promoting
// the head of the waitlist into the freed slot.
func UnregisterFromEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid event id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result models.UnregisterResult
	_, err = store.UpdateEvent(ctx, eventID, func(ev *models.Event) error {
		r, err := ev.UnregisterUser(userID, time.Now().UTC())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}

	data := gin.H{"status": result.Status}
	if result.PromotedFromWaitlist != nil {
		data["promotedFromWaitlist"] = result.PromotedFromWaitlist.Hex()
	}
	respondData(c, http.StatusOK, data, "Unregistered successfully")
}

// CheckInInput names the attendee the organizer is checking in.
type CheckInInput struct {
	UserID string `json:"userId" binding:"required"`
}

// CheckInAttendee marks a registered user as attended. Organizer only.
func CheckInAttendee(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid event id")
		return
	}
	callerID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	attendeeID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notOwner := false
	_, err = store.UpdateEvent(ctx, eventID, func(ev *models.Event) error {
		if ev.Organizer != callerID {
			notOwner = true
			return store.ErrNotFound
		}
		return ev.CheckInAttendee(attendeeID, time.Now().UTC())
	})
	if err != nil {
		if notOwner {
			respondError(c, http.StatusForbidden, "NOT_AUTHORIZED", "only the organizer can check in attendees")
			return
		}
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{}, "Attendee checked in")
}

// EventFeedbackInput is an attendee's rating for an event.
type EventFeedbackInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" binding:"max=500"`
}

// SubmitEventFeedback records the caller's feedback on an event they
// attended.
func SubmitEventFeedback(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid event id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input EventFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev, err := store.UpdateEvent(ctx, eventID, func(ev *models.Event) error {
		return ev.AddFeedback(userID, input.Rating, input.Comment)
	})
	if err != nil {
		respondBusinessError(c, err, "EVENT_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"averageRating": ev.AverageRating,
		"totalRatings":  ev.TotalRatings,
	}, "Feedback submitted")
}
