package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Drona-Balasara/ALUMNET/config"
	"github.com/Drona-Balasara/ALUMNET/models"
	"github.com/Drona-Balasara/ALUMNET/store"
	"github.com/Drona-Balasara/ALUMNET/utils"
)

// RegisterInput is the request body for signup.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"required,oneof=student alumni"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// LoginInput is the request body for login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordInput requests an OTP.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput redeems an OTP for a new password.
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Register creates a new user account.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := store.GetUserByEmail(ctx, input.Email)
	if err == nil {
		respondError(c, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusInternalServerError, "REGISTER_ERROR", "database error")
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "REGISTER_ERROR", "failed to hash password")
		return
	}

	user := models.User{
		Email:    input.Email,
		Password: hash,
		Role:     input.Role,
		Profile: models.Profile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
		},
		IsActive: true,
	}
	if err := store.CreateUser(ctx, &user); err != nil {
		respondError(c, http.StatusInternalServerError, "REGISTER_ERROR", "failed to create user")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"user": user}, "user registered")
}

// Login authenticates and returns a JWT.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
		return
	}
	if !user.IsActive {
		respondError(c, http.StatusUnauthorized, "USER_INACTIVE", "account is inactive")
		return
	}

	if err := utils.CheckPassword(user.Password, input.Password); err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		log.Printf("Login: jwt generation failed err=%v", err)
		respondError(c, http.StatusInternalServerError, "LOGIN_ERROR", "could not generate token")
		return
	}

	_ = store.TouchLastLogin(ctx, user.ID, time.Now().UTC())

	respondData(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	}, "")
}

// ForgotPassword generates an OTP, stores its hash, and mails it. The
// response never reveals whether the email exists.
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	generic := "if that email exists, an OTP has been sent"

	user, err := store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		respondData(c, http.StatusOK, gin.H{}, generic)
		return
	}

	otp := utils.GenerateOTP(6)
	hashedOTP, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "OTP_ERROR", "could not generate otp")
		return
	}

	ttl := config.App.OTPTTL
	if err := store.SetResetOTP(ctx, user.ID, string(hashedOTP), time.Now().Add(ttl)); err != nil {
		respondError(c, http.StatusInternalServerError, "OTP_ERROR", "could not store otp")
		return
	}

	subject := "Your password reset OTP"
	body := "Your OTP is: " + otp + "\nThis code expires in " + strconv.Itoa(int(ttl.Minutes())) + " minutes."
	if err := utils.SendMail(user.Email, subject, body); err != nil {
		// dev fallback when SMTP is not configured
		log.Println("Failed to send email, OTP (dev-only):", otp, "error:", err)
	}

	respondData(c, http.StatusOK, gin.H{}, generic)
}

// ResetPassword verifies the OTP and sets a new password.
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_OTP", "invalid OTP or email")
		return
	}

	if user.ResetOTP == "" || user.ResetOTPExp.Before(time.Now()) {
		respondError(c, http.StatusBadRequest, "INVALID_OTP", "invalid or expired OTP")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.ResetOTP), []byte(input.OTP)); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_OTP", "invalid OTP")
		return
	}

	newHash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "RESET_ERROR", "could not hash password")
		return
	}

	if err := store.ResetPassword(ctx, user.ID, newHash); err != nil {
		respondError(c, http.StatusInternalServerError, "RESET_ERROR", "could not reset password")
		return
	}

	respondData(c, http.StatusOK, gin.H{}, "password reset successful")
}
