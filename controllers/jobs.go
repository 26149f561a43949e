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

// CreateJobInput is the request body for posting a job.
type CreateJobInput struct {
	Title               string        `json:"title" binding:"required,max=100"`
	Company             string        `json:"company" binding:"required,max=100"`
	Description         string        `json:"description" binding:"required,min=10,max=5000"`
	Requirements        []string      `json:"requirements,omitempty"`
	Location            string        `json:"location,omitempty" binding:"max=100"`
	Type                string        `json:"type" binding:"required,oneof=full-time part-time internship contract freelance"`
	WorkMode            string        `json:"workMode,omitempty" binding:"omitempty,oneof=remote onsite hybrid"`
	Salary              models.Salary `json:"salary,omitempty"`
	Skills              []string      `json:"skills,omitempty"`
	ExperienceLevel     string        `json:"experienceLevel,omitempty" binding:"omitempty,oneof=entry mid senior lead executive"`
	Tags                []string      `json:"tags,omitempty"`
	Benefits            []string      `json:"benefits,omitempty"`
	ContactEmail        string        `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ExpiresAt           *time.Time    `json:"expiresAt,omitempty"`
	ApplicationDeadline *time.Time    `json:"applicationDeadline,omitempty"`
}

// UpdateJobInput allows partial updates by the poster.
type UpdateJobInput struct {
	Title               *string        `json:"title,omitempty"`
	Company             *string        `json:"company,omitempty"`
	Description         *string        `json:"description,omitempty"`
	Requirements        []string       `json:"requirements,omitempty"`
	Location            *string        `json:"location,omitempty"`
	Type                *string        `json:"type,omitempty"`
	WorkMode            *string        `json:"workMode,omitempty"`
	Salary              *models.Salary `json:"salary,omitempty"`
	Skills              []string       `json:"skills,omitempty"`
	ExperienceLevel     *string        `json:"experienceLevel,omitempty"`
	Tags                []string       `json:"tags,omitempty"`
	Benefits            []string       `json:"benefits,omitempty"`
	ContactEmail        *string        `json:"contactEmail,omitempty"`
	ExpiresAt           *time.Time     `json:"expiresAt,omitempty"`
	ApplicationDeadline *time.Time     `json:"applicationDeadline,omitempty"`
}

// CreateJob posts a new job. Alumni only; the caller becomes the owner.
func CreateJob(c *gin.Context) {
	var input CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	posterID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	job := models.Job{
		Title:               input.Title,
		Company:             input.Company,
		Description:         input.Description,
		Requirements:        input.Requirements,
		Location:            input.Location,
		Type:                input.Type,
		WorkMode:            input.WorkMode,
		Salary:              input.Salary,
		Skills:              input.Skills,
		ExperienceLevel:     input.ExperienceLevel,
		PostedBy:            posterID,
		Tags:                input.Tags,
		Benefits:            input.Benefits,
		ContactEmail:        input.ContactEmail,
		ApplicationDeadline: input.ApplicationDeadline,
		IsActive:            true,
	}
	if input.ExpiresAt != nil {
		job.ExpiresAt = *input.ExpiresAt
	}

	if err := job.ValidateSalaryRange(); err != nil {
		respondBusinessError(c, err, "JOB_NOT_FOUND")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.CreateJob(ctx, &job); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_JOB_ERROR", "could not create job posting")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"job": job}, "Job posted successfully")
}

// ListJobs returns active postings with filters and sorting. Authenticated
// callers learn whether they applied to each.
func ListJobs(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	salaryMin, _ := strconv.Atoi(c.Query("salaryMin"))
	salaryMax, _ := strconv.Atoi(c.Query("salaryMax"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs, total, err := store.ListActiveJobs(ctx, store.JobListOptions{
		Type:            c.Query("type"),
		WorkMode:        c.Query("workMode"),
		ExperienceLevel: c.Query("experienceLevel"),
		Location:        c.Query("location"),
		Company:         c.Query("company"),
		Search:          c.Query("search"),
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		Sort:            c.Query("sort"),
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "GET_JOBS_ERROR", "could not fetch jobs")
		return
	}

	userID, authed := currentUserID(c)
	now := time.Now().UTC()
	list := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		item := gin.H{
			"job":              jobSummary(job, userID, authed),
			"applicationCount": job.ApplicationCount(),
			"daysRemaining":    job.DaysRemaining(now),
		}
		if authed {
			item["hasApplied"] = job.HasUserApplied(userID)
			if app := job.ApplicationByUser(userID); app != nil {
				item["userApplication"] = app
			}
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
		"jobs":       list,
		"pagination": pagination(page, limit, total),
	}, "")
}

// jobSummary clones the job with its applications redacted unless the reader
// owns the posting. Stored state is never modified.
func jobSummary(job *models.Job, readerID primitive.ObjectID, authed bool) *models.Job {
	out := *job
	if !authed || readerID != job.PostedBy {
		out.Applications = job.RedactedApplications()
	}
	return &out
}

// GetJob fetches a single posting, redacted for non-owners, and counts the
// view.
func GetJob(c *gin.Context) {
	jobID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	job, err := store.GetJob(ctx, jobID)
	if err != nil {
		respondBusinessError(c, err, "JOB_NOT_FOUND")
		return
	}
	if !job.IsActive {
		respondError(c, http.StatusNotFound, "JOB_NOT_FOUND", "job not found")
		return
	}

	_ = store.IncrementJobViews(ctx, jobID)

	userID, authed := currentUserID(c)
	data := gin.H{
		"job":              jobSummary(job, userID, authed),
		"applicationCount": job.ApplicationCount(),
		"daysRemaining":    job.DaysRemaining(time.Now().UTC()),
	}
	if authed {
		data["hasApplied"] = job.HasUserApplied(userID)
		if app := job.ApplicationByUser(userID); app != nil {
			data["userApplication"] = app
		}
	}
	respondData(c, http.StatusOK, data, "")
}

// UpdateJob edits a posting; only the poster may do so.
func UpdateJob(c *gin.Context) {
	jobID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input UpdateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notOwner := false
	job, err := store.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if job.PostedBy != userID {
			notOwner = true
			return store.ErrNotFound
		}
		if input.Title != nil {
			job.Title = *input.Title
		}
		if input.Company != nil {
			job.Company = *input.Company
		}
		if input.Description != nil {
			job.Description = *input.Description
		}
		if input.Requirements != nil {
			job.Requirements = input.Requirements
		}
		if input.Location != nil {
			job.Location = *input.Location
		}
		if input.Type != nil {
			job.Type = *input.Type
		}
		if input.WorkMode != nil {
			job.WorkMode = *input.WorkMode
		}
		if input.Salary != nil {
			job.Salary = *input.Salary
		}
		if input.Skills != nil {
			job.Skills = input.Skills
		}
		if input.ExperienceLevel != nil {
			job.ExperienceLevel = *input.ExperienceLevel
		}
		if input.Tags != nil {
			job.Tags = input.Tags
		}
		if input.Benefits != nil {
			job.Benefits = input.Benefits
		}
		if input.ContactEmail != nil {
			job.ContactEmail = *input.ContactEmail
		}
		if input.ExpiresAt != nil {
			job.ExpiresAt = *input.ExpiresAt
		}
		if input.ApplicationDeadline != nil {
			job.ApplicationDeadline = input.ApplicationDeadline
		}
		return job.ValidateSalaryRange()
	})
	if err != nil {
		if notOwner {
			respondError(c, http.StatusForbidden, "NOT_AUTHORIZED", "only the poster can modify this job")
			return
		}
		respondBusinessError(c, err, "JOB_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{"job": job}, "Job updated successfully")
}

// DeleteJob soft-retires a posting; only the poster may do so.
func DeleteJob(c *gin.Context) {
	jobID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
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
	_, err = store.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if job.PostedBy != userID {
			notOwner = true
			return store.ErrNotFound
		}
		job.IsActive = false
		return nil
	})
	if err != nil {
		if notOwner {
			respondError(c, http.StatusForbidden, "NOT_AUTHORIZED", "only the poster can delete this job")
			return
		}
		respondBusinessError(c, err, "JOB_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{}, "Job deleted successfully")
}

// ApplyInput is the request body for a job application.
type ApplyInput struct {
	CoverLetter string `json:"coverLetter,omitempty" binding:"max=2000"`
	Resume      string `json:"resume,omitempty" binding:"omitempty,url"`
}

// ApplyForJob submits the caller's application. The response carries only
// the application's id, time and status.
func ApplyForJob(c *gin.Context) {
	jobID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}
	applicantID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input ApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var created models.Application
	_, err = store.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if !job.IsActive {
			return store.ErrNotFound
		}
		app, err := job.Apply(applicantID, input.CoverLetter, input.Resume, time.Now().UTC())
		if err != nil {
			return err
		}
		created = *app
		return nil
	})
	if err != nil {
		respondBusinessError(c, err, "JOB_NOT_FOUND")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"application": gin.H{
			"id":        created.ID.Hex(),
			"appliedAt": created.AppliedAt,
			"status":    created.Status,
		},
	}, "Application submitted successfully")
}

// UpdateApplicationInput carries the new status and optional reviewer notes.
type UpdateApplicationInput struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes,omitempty" binding:"max=1000"`
}

// UpdateApplicationStatus sets an application's status. Poster only. The
// pipeline is permissive: any valid status may follow any other.
func UpdateApplicationStatus(c *gin.Context) {
	jobID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}
	appID, err := primitive.ObjectIDFromHex(c.Param("applicationId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application id")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}

	var input UpdateApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notOwner := false
	var updated models.Application
	_, err = store.UpdateJob(ctx, jobID, func(job *models.Job) error {
		if job.PostedBy != userID {
			notOwner = true
			return store.ErrNotFound
		}
		app, err := job.UpdateApplicationStatus(appID, input.Status, input.Notes)
		if err != nil {
			return err
		}
		updated = *app
		return nil
	})
	if err != nil {
		if notOwner {
			respondError(c, http.StatusForbidden, "NOT_AUTHORIZED", "only the poster can review applications")
			return
		}
		respondBusinessError(c, err, "JOB_NOT_FOUND")
		return
	}

	respondData(c, http.StatusOK, gin.H{"application": updated}, "Application status updated successfully")
}

// MyPostedJobs lists the caller's own postings with full applications.
func MyPostedJobs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs, total, err := store.ListJobsByPoster(ctx, userID, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "GET_MY_JOBS_ERROR", "could not fetch your job postings")
		return
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	respondData(c, http.StatusOK, gin.H{
		"jobs":       jobs,
		"pagination": pagination(page, limit, total),
	}, "")
}

// MyApplications lists jobs the caller applied to, exposing only their own
// application on each.
func MyApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "invalid user id")
		return
	}
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs, err := store.ListJobsAppliedBy(ctx, userID, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "GET_MY_APPLICATIONS_ERROR", "could not fetch your applications")
		return
	}

	list := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		app := job.ApplicationByUser(userID)
		summary := *job
		summary.Applications = nil
		list = append(list, gin.H{
			"job":             &summary,
			"userApplication": app,
		})
	}

	respondData(c, http.StatusOK, gin.H{"jobs": list}, "")
}
