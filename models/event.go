package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types.
const (
	EventNetworking = "networking"
	EventWorkshop   = "workshop"
	EventSeminar    = "seminar"
	EventSocial     = "social"
	EventCareerFair = "career-fair"
	EventWebinar    = "webinar"
)

// Location types.
const (
	LocationOnline  = "online"
	LocationOffline = "offline"
	LocationHybrid  = "hybrid"
)

// Attendee statuses.
const (
	AttendeeRegistered = "registered"
	AttendeeAttended   = "attended"
	AttendeeCancelled  = "cancelled"
	AttendeeNoShow     = "no-show"
)

// Registration outcomes.
const (
	StatusRegistered = "registered"
	StatusWaitlisted = "waitlisted"
)

type EventLocation struct {
	Type        string `bson:"type" json:"type"`
	Address     string `bson:"address,omitempty" json:"address,omitempty"`
	Venue       string `bson:"venue,omitempty" json:"venue,omitempty"`
	MeetingLink string `bson:"meeting_link,omitempty" json:"meetingLink,omitempty"`
}

type AttendeeFeedback struct {
	Rating  int    `bson:"rating" json:"rating"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`
}

type Attendee struct {
	User         primitive.ObjectID `bson:"user" json:"user"`
	RegisteredAt time.Time          `bson:"registered_at" json:"registeredAt"`
	Status       string             `bson:"status" json:"status"`
	CheckInTime  *time.Time         `bson:"check_in_time,omitempty" json:"checkInTime,omitempty"`
	Feedback     *AttendeeFeedback  `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

type WaitlistEntry struct {
	User     primitive.ObjectID `bson:"user" json:"user"`
	JoinedAt time.Time          `bson:"joined_at" json:"joinedAt"`
}

// Event is the aggregate for event registration. Attendees and waitlist are
// embedded so a single document write covers every registration transition.
// Capacity 0 means unlimited.
type Event struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Type                 string             `bson:"type" json:"type"`
	Date                 time.Time          `bson:"date" json:"date"`
	EndDate              *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Location             EventLocation      `bson:"location" json:"location"`
	Capacity             int                `bson:"capacity,omitempty" json:"capacity,omitempty"`
	Organizer            primitive.ObjectID `bson:"organizer" json:"organizer"`
	Attendees            []Attendee         `bson:"attendees" json:"attendees"`
	Waitlist             []WaitlistEntry    `bson:"waitlist" json:"waitlist"`
	Tags                 []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsPublic             bool               `bson:"is_public" json:"isPublic"`
	RegistrationDeadline *time.Time         `bson:"registration_deadline,omitempty" json:"registrationDeadline,omitempty"`
	IsActive             bool               `bson:"is_active" json:"isActive"`
	Views                int64              `bson:"views" json:"views"`
	AverageRating        float64            `bson:"average_rating" json:"averageRating"`
	TotalRatings         int                `bson:"total_ratings" json:"totalRatings"`
	Version              int64              `bson:"version" json:"-"`
	CreatedAt            time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updatedAt"`
}

// RegistrationResult reports whether a register call landed in attendees or
// on the waitlist.
type RegistrationResult struct {
	Status string `json:"status"`
}

// UnregisterResult reports an unregistration and, when a slot freed up, the
// waitlisted user promoted into it.
type UnregisterResult struct {
	Status               string              `json:"status"`
	PromotedFromWaitlist *primitive.ObjectID `json:"promotedFromWaitlist,omitempty"`
}

func (e *Event) IsUserRegistered(userID primitive.ObjectID) bool {
	for _, a := range e.Attendees {
		if a.User == userID {
			return true
		}
	}
	return false
}

func (e *Event) IsUserOnWaitlist(userID primitive.ObjectID) bool {
	for _, w := range e.Waitlist {
		if w.User == userID {
			return true
		}
	}
	return false
}

func (e *Event) RegistrationCount() int {
	return len(e.Attendees)
}

// IsFull reports whether the attendee list has reached capacity. Always false
// for uncapacitated events.
func (e *Event) IsFull() bool {
	if e.Capacity <= 0 {
		return false
	}
	return len(e.Attendees) >= e.Capacity
}

// AvailableSpots returns the remaining capacity, or nil when unlimited.
func (e *Event) AvailableSpots() *int {
	if e.Capacity <= 0 {
		return nil
	}
	n := e.Capacity - len(e.Attendees)
	if n < 0 {
		n = 0
	}
	return &n
}

func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Before(now)
}

// RegistrationOpen reports whether registrations are accepted: the event must
// not be past, and any registration deadline must not have elapsed.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	return !e.IsPast(now)
}

// RegisterUser applies the NONE -> REGISTERED / NONE -> WAITLISTED transition.
// A user already in attendees or on the waitlist cannot register again.
func (e *Event) RegisterUser(userID primitive.ObjectID, now time.Time) (RegistrationResult, error) {
	if e.IsUserRegistered(userID) || e.IsUserOnWaitlist(userID) {
		return RegistrationResult{}, ErrAlreadyRegistered
	}
	if !e.RegistrationOpen(now) {
		return RegistrationResult{}, ErrRegistrationClosed
	}

	if e.IsFull() {
		e.Waitlist = append(e.Waitlist, WaitlistEntry{User: userID, JoinedAt: now})
		return RegistrationResult{Status: StatusWaitlisted}, nil
	}

	e.Attendees = append(e.Attendees, Attendee{
		User:         userID,
		RegisteredAt: now,
		Status:       AttendeeRegistered,
	})
	return RegistrationResult{Status: StatusRegistered}, nil
}

// UnregisterUser removes an attendee and, when a capacity-bound slot frees up,
// promotes the head of the waitlist (earliest join first). Promotion is the
// only way a waitlisted user becomes registered.
func (e *Event) UnregisterUser(userID primitive.ObjectID, now time.Time) (UnregisterResult, error) {
	idx := -1
	for i, a := range e.Attendees {
		if a.User == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return UnregisterResult{}, ErrNotRegistered
	}

	e.Attendees = append(e.Attendees[:idx], e.Attendees[idx+1:]...)

	result := UnregisterResult{Status: "unregistered"}
	if len(e.Waitlist) > 0 && e.Capacity > 0 && len(e.Attendees) < e.Capacity {
		next := e.Waitlist[0]
		e.Waitlist = e.Waitlist[1:]
		e.Attendees = append(e.Attendees, Attendee{
			User:         next.User,
			RegisteredAt: now,
			Status:       AttendeeRegistered,
		})
		promoted := next.User
		result.PromotedFromWaitlist = &promoted
	}
	return result, nil
}

// CheckInAttendee marks a registered user as attended with the check-in time.
func (e *Event) CheckInAttendee(userID primitive.ObjectID, now time.Time) error {
	for i := range e.Attendees {
		if e.Attendees[i].User == userID {
			e.Attendees[i].Status = AttendeeAttended
			t := now
			e.Attendees[i].CheckInTime = &t
			return nil
		}
	}
	return ErrNotRegistered
}

// AddFeedback records an attendee's rating and refreshes the event's average.
func (e *Event) AddFeedback(userID primitive.ObjectID, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidFeedback
	}
	for i := range e.Attendees {
		if e.Attendees[i].User == userID {
			e.Attendees[i].Feedback = &AttendeeFeedback{Rating: rating, Comment: comment}
			e.RecalcAverageRating()
			return nil
		}
	}
	return ErrNotRegistered
}

// RecalcAverageRating recomputes AverageRating and TotalRatings from attendee
// feedback.
func (e *Event) RecalcAverageRating() {
	sum, count := 0, 0
	for _, a := range e.Attendees {
		if a.Feedback != nil && a.Feedback.Rating > 0 {
			sum += a.Feedback.Rating
			count++
		}
	}
	if count == 0 {
		e.AverageRating = 0
		e.TotalRatings = 0
		return
	}
	e.AverageRating = float64(sum) / float64(count)
	e.TotalRatings = count
}

// ValidateLocation enforces the structural location rule: offline/hybrid
// events need an address or venue, online/hybrid events need a meeting link.
func (e *Event) ValidateLocation() error {
	switch e.Location.Type {
	case LocationOnline:
		if e.Location.MeetingLink == "" {
			return ErrInvalidLocation
		}
	case LocationOffline:
		if e.Location.Address == "" && e.Location.Venue == "" {
			return ErrInvalidLocation
		}
	case LocationHybrid:
		if e.Location.Address == "" && e.Location.Venue == "" {
			return ErrInvalidLocation
		}
		if e.Location.MeetingLink == "" {
			return ErrInvalidLocation
		}
	default:
		return ErrInvalidLocation
	}
	return nil
}
