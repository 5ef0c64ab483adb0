package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/domain"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type IdentityInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Verified bool      `json:"verified"`
}

type LessonInput struct {
	Title     string            `json:"title"`
	Exercises []domain.Exercise `json:"exercises"`
}

type LessonItem struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Exercises   []domain.Exercise `json:"exercises"`
	IsCompleted bool              `json:"isCompleted"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func toLessonItem(l domain.Lesson, completed bool) LessonItem {
	return LessonItem{
		ID:          l.ID,
		Title:       l.Title,
		Exercises:   l.Exercises,
		IsCompleted: completed,
		CreatedAt:   l.CreatedAt,
	}
}
