package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. Alumni can post jobs and organize events; students consume them.
const (
	RoleStudent = "student"
	RoleAlumni  = "alumni"
)

type Profile struct {
	FirstName      string   `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName       string   `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Avatar         string   `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio            string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Major          string   `bson:"major,omitempty" json:"major,omitempty"`
	GraduationYear int      `bson:"graduation_year,omitempty" json:"graduationYear,omitempty"`
	Company        string   `bson:"company,omitempty" json:"company,omitempty"`
	Position       string   `bson:"position,omitempty" json:"position,omitempty"`
	Location       string   `bson:"location,omitempty" json:"location,omitempty"`
	Skills         []string `bson:"skills,omitempty" json:"skills,omitempty"`
	LinkedIn       string   `bson:"linkedin,omitempty" json:"linkedIn,omitempty"`
	Github         string   `bson:"github,omitempty" json:"github,omitempty"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password_hash" json:"-"`
	Role        string             `bson:"role" json:"role"`
	Profile     Profile            `bson:"profile" json:"profile"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	LastLogin   *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	ResetOTP    string             `bson:"reset_otp,omitempty" json:"-"`
	ResetOTPExp time.Time          `bson:"reset_otp_exp,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
