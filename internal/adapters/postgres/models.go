package postgres

import (
	"time"

	"github.com/google/uuid"
)

type identityModel struct {
	IdentityID   uuid.UUID  `gorm:"column:identity_id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash"`
	Verified     bool       `gorm:"column:verified"`
	OTPCode      *string    `gorm:"column:otp_code"`
	OTPPurpose   *string    `gorm:"column:otp_purpose"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (identityModel) TableName() string { return "identities" }

type lessonModel struct {
	LessonID  uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title"`
	Exercises string    `gorm:"column:exercises;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (lessonModel) TableName() string { return "lessons" }

type completedLessonModel struct {
	IdentityID  uuid.UUID `gorm:"column:identity_id;type:uuid;primaryKey"`
	LessonID    uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey"`
	CompletedAt time.Time `gorm:"column:completed_at"`
}

func (completedLessonModel) TableName() string { return "identity_completed_lessons" }
