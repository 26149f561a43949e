package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job types.
const (
	JobFullTime   = "full-time"
	JobPartTime   = "part-time"
	JobInternship = "internship"
	JobContract   = "contract"
	JobFreelance  = "freelance"
)

// Application statuses. The pipeline is usually traversed forward
// (pending -> reviewed -> shortlisted -> interviewed -> accepted/rejected)
// but the poster may set any status at any time.
const (
	ApplicationPending     = "pending"
	ApplicationReviewed    = "reviewed"
	ApplicationShortlisted = "shortlisted"
	ApplicationInterviewed = "interviewed"
	ApplicationAccepted    = "accepted"
	ApplicationRejected    = "rejected"
)

// DefaultJobLifetime is how long a posting stays open when no explicit
// expiry is given.
const DefaultJobLifetime = 30 * 24 * time.Hour

var validApplicationStatuses = map[string]bool{
	ApplicationPending:     true,
	ApplicationReviewed:    true,
	ApplicationShortlisted: true,
	ApplicationInterviewed: true,
	ApplicationAccepted:    true,
	ApplicationRejected:    true,
}

func IsValidApplicationStatus(s string) bool {
	return validApplicationStatuses[s]
}

type Salary struct {
	Min      int    `bson:"min,omitempty" json:"min,omitempty"`
	Max      int    `bson:"max,omitempty" json:"max,omitempty"`
	Currency string `bson:"currency,omitempty" json:"currency,omitempty"`
	Period   string `bson:"period,omitempty" json:"period,omitempty"`
}

type Application struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Applicant   primitive.ObjectID `bson:"applicant" json:"applicant"`
	AppliedAt   time.Time          `bson:"applied_at" json:"appliedAt"`
	Status      string             `bson:"status" json:"status"`
	CoverLetter string             `bson:"cover_letter,omitempty" json:"coverLetter,omitempty"`
	Resume      string             `bson:"resume,omitempty" json:"resume,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Job is the aggregate for postings and their embedded applications. Every
// application mutation is a single document write.
type Job struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title"`
	Company             string             `bson:"company" json:"company"`
	Description         string             `bson:"description" json:"description"`
	Requirements        []string           `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Location            string             `bson:"location,omitempty" json:"location,omitempty"`
	Type                string             `bson:"type" json:"type"`
	WorkMode            string             `bson:"work_mode,omitempty" json:"workMode,omitempty"`
	Salary              Salary             `bson:"salary,omitempty" json:"salary,omitempty"`
	Skills              []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	ExperienceLevel     string             `bson:"experience_level,omitempty" json:"experienceLevel,omitempty"`
	PostedBy            primitive.ObjectID `bson:"posted_by" json:"postedBy"`
	Applications        []Application      `bson:"applications" json:"applications"`
	IsActive            bool               `bson:"is_active" json:"isActive"`
	ExpiresAt           time.Time          `bson:"expires_at" json:"expiresAt"`
	ApplicationDeadline *time.Time         `bson:"application_deadline,omitempty" json:"applicationDeadline,omitempty"`
	Views               int64              `bson:"views" json:"views"`
	Tags                []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Benefits            []string           `bson:"benefits,omitempty" json:"benefits,omitempty"`
	ContactEmail        string             `bson:"contact_email,omitempty" json:"contactEmail,omitempty"`
	Version             int64              `bson:"version" json:"-"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (j *Job) HasUserApplied(userID primitive.ObjectID) bool {
	for _, a := range j.Applications {
		if a.Applicant == userID {
			return true
		}
	}
	return false
}

// ApplicationByUser returns the user's application. Applicants are unique, so
// the first match is the only one.
func (j *Job) ApplicationByUser(userID primitive.ObjectID) *Application {
	for i := range j.Applications {
		if j.Applications[i].Applicant == userID {
			return &j.Applications[i]
		}
	}
	return nil
}

func (j *Job) ApplicationByID(id primitive.ObjectID) *Application {
	for i := range j.Applications {
		if j.Applications[i].ID == id {
			return &j.Applications[i]
		}
	}
	return nil
}

func (j *Job) ApplicationCount() int {
	return len(j.Applications)
}

func (j *Job) IsExpired(now time.Time) bool {
	return !j.ExpiresAt.IsZero() && j.ExpiresAt.Before(now)
}

// DaysRemaining returns whole days until expiry, or nil when the posting
// never expires.
func (j *Job) DaysRemaining(now time.Time) *int {
	if j.ExpiresAt.IsZero() {
		return nil
	}
	days := int(j.ExpiresAt.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// Apply appends a pending application. Preconditions are checked in a fixed
// order so each failure mode is distinct.
func (j *Job) Apply(applicantID primitive.ObjectID, coverLetter, resume string, now time.Time) (*Application, error) {
	if j.IsExpired(now) {
		return nil, ErrJobExpired
	}
	if j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now) {
		return nil, ErrApplicationDeadlinePassed
	}
	if j.HasUserApplied(applicantID) {
		return nil, ErrAlreadyApplied
	}
	if applicantID == j.PostedBy {
		return nil, ErrCannotApplyOwnJob
	}

	app := Application{
		ID:          primitive.NewObjectID(),
		Applicant:   applicantID,
		AppliedAt:   now,
		Status:      ApplicationPending,
		CoverLetter: coverLetter,
		Resume:      resume,
	}
	j.Applications = append(j.Applications, app)
	return &j.Applications[len(j.Applications)-1], nil
}

// UpdateApplicationStatus sets a new status (and notes, when given) on an
// application. Any valid status may be set regardless of the current one.
func (j *Job) UpdateApplicationStatus(appID primitive.ObjectID, status, notes string) (*Application, error) {
	if !IsValidApplicationStatus(status) {
		return nil, ErrInvalidApplicationStatus
	}
	app := j.ApplicationByID(appID)
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	app.Status = status
	if notes != "" {
		app.Notes = notes
	}
	return app, nil
}

// ValidateSalaryRange rejects postings whose minimum salary exceeds the
// maximum.
func (j *Job) ValidateSalaryRange() error {
	if j.Salary.Min > 0 && j.Salary.Max > 0 && j.Salary.Min > j.Salary.Max {
		return ErrInvalidSalaryRange
	}
	return nil
}

// RedactedApplications strips cover letters, resumes and reviewer notes for
// readers other than the poster. The applicant id stays as an opaque
// reference; stored state is never altered.
func (j *Job) RedactedApplications() []Application {
	redacted := make([]Application, len(j.Applications))
	for i, a := range j.Applications {
		redacted[i] = Application{
			ID:        a.ID,
			Applicant: a.Applicant,
			AppliedAt: a.AppliedAt,
			Status:    a.Status,
		}
	}
	return redacted
}
