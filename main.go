package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Drona-Balasara/ALUMNET/config"
	"github.com/Drona-Balasara/ALUMNET/controllers"
	"github.com/Drona-Balasara/ALUMNET/middleware"
	"github.com/Drona-Balasara/ALUMNET/store"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Connect to MongoDB
	config.ConnectDB()

	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the ALUMNET API",
			"routes":  []string{"/api/auth", "/api/users", "/api/events", "/api/jobs", "/api/community", "/api/chatbot"},
		})
	})

	api := router.Group("/api")
	{
		sensitive := middleware.SensitiveLimit(15*time.Minute, 5)

		auth := api.Group("/auth")
		{
			auth.POST("/register", sensitive, controllers.Register)
			auth.POST("/login", sensitive, controllers.Login)
			auth.POST("/forgot-password", sensitive, controllers.ForgotPassword)
			auth.POST("/reset-password", sensitive, controllers.ResetPassword)
		}

		users := api.Group("/users")
		{
			users.GET("/me", middleware.Auth(), controllers.Me)
			users.PUT("/me", middleware.Auth(), controllers.UpdateMe)
			users.GET("/:id", middleware.Auth(), controllers.GetUserProfile)
		}

		events := api.Group("/events")
		{
			events.GET("", middleware.OptionalAuth(), controllers.ListEvents)
			events.GET("/:id", middleware.OptionalAuth(), controllers.GetEvent)
			events.POST("", middleware.Auth(), middleware.RequireRole("alumni"), controllers.CreateEvent)
			events.PUT("/:id", middleware.Auth(), controllers.UpdateEvent)
			events.DELETE("/:id", middleware.Auth(), controllers.DeleteEvent)
			events.POST("/:id/register", middleware.Auth(), controllers.RegisterForEvent)
			events.DELETE("/:id/register", middleware.Auth(), controllers.UnregisterFromEvent)
			events.POST("/:id/checkin", middleware.Auth(), controllers.CheckInAttendee)
			events.POST("/:id/feedback", middleware.Auth(), controllers.SubmitEventFeedback)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", middleware.OptionalAuth(), controllers.ListJobs)
			jobs.GET("/my/posted", middleware.Auth(), middleware.RequireRole("alumni"), controllers.MyPostedJobs)
			jobs.GET("/my/applications", middleware.Auth(), controllers.MyApplications)
			jobs.GET("/:id", middleware.OptionalAuth(), controllers.GetJob)
			jobs.POST("", middleware.Auth(), middleware.RequireRole("alumni"), controllers.CreateJob)
			jobs.PUT("/:id", middleware.Auth(), controllers.UpdateJob)
			jobs.DELETE("/:id", middleware.Auth(), controllers.DeleteJob)
			jobs.POST("/:id/apply", middleware.Auth(), controllers.ApplyForJob)
			jobs.PUT("/:id/applications/:applicationId", middleware.Auth(), controllers.UpdateApplicationStatus)
		}

		community := api.Group("/community")
		{
			community.GET("/posts", middleware.OptionalAuth(), controllers.ListPosts)
			community.GET("/posts/:id", middleware.OptionalAuth(), controllers.GetPost)
			community.POST("/posts", middleware.Auth(), controllers.CreatePost)
			community.POST("/posts/:id/comments", middleware.Auth(), controllers.AddComment)
			community.POST("/posts/:id/like", middleware.Auth(), controllers.ToggleLike)
			community.POST("/posts/:id/comments/:commentId/like", middleware.Auth(), controllers.ToggleCommentLike)
		}

		chatbot := api.Group("/chatbot")
		{
			chatbot.POST("/sessions", middleware.Auth(), controllers.StartChatSession)
			chatbot.GET("/sessions", middleware.Auth(), controllers.ChatHistory)
			chatbot.GET("/sessions/:sessionId", middleware.Auth(), controllers.GetChatSession)
			chatbot.POST("/sessions/:sessionId/messages", middleware.Auth(), controllers.PostChatMessage)
			chatbot.DELETE("/sessions/:sessionId", middleware.Auth(), controllers.EndChatSession)
		}
	}

	srv := &http.Server{
		Addr:    ":" + config.App.Port,
		Handler: router,
	}

	// Periodic sweep: soft-retire expired events/jobs and idle chat sessions.
	sweepDone := make(chan struct{})
	go runSweeper(sweepDone)

	go func() {
		log.Printf("Server started on http://localhost:%s", config.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt (Ctrl+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	if err := config.Client.Disconnect(ctx); err != nil {
		log.Println("Error disconnecting MongoDB:", err)
	}

	log.Println("Server exited properly")
}

// runSweeper deactivates expired documents on a fixed interval until done is
// closed. Each pass is idempotent, so overlapping deployments are harmless.
func runSweeper(done <-chan struct{}) {
	ticker := time.NewTicker(config.App.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			now := time.Now().UTC()

			if n, err := store.DeactivateExpiredEvents(ctx, now); err != nil {
				log.Printf("sweep: events: %v", err)
			} else if n > 0 {
				log.Printf("sweep: deactivated %d expired events", n)
			}

			if n, err := store.DeactivateExpiredJobs(ctx, now); err != nil {
				log.Printf("sweep: jobs: %v", err)
			} else if n > 0 {
				log.Printf("sweep: deactivated %d expired jobs", n)
			}

			if n, err := store.CleanupInactiveSessions(ctx, config.App.SessionTimeout, now); err != nil {
				log.Printf("sweep: chat sessions: %v", err)
			} else if n > 0 {
				log.Printf("sweep: closed %d idle chat sessions", n)
			}

			cancel()
		}
	}
}
