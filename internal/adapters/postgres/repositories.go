package postgres

import (
	"encoding/json"
	"errors"

	"github.com/lessonhub/auth-service/internal/domain"
	"github.com/lessonhub/auth-service/internal/ports"
	"gorm.io/gorm"
)

// Repositories bundles the store adapters that share one gorm connection.
type Repositories struct {
	Identities ports.IdentityRepository
	Lessons    ports.LessonRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Identities: &identityRepository{db: db},
		Lessons:    &lessonRepository{db: db},
	}
}

func toIdentityModel(identity domain.Identity) identityModel {
	rec := identityModel{
		IdentityID:   identity.ID,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		Verified:     identity.Verified,
		CreatedAt:    identity.CreatedAt,
		UpdatedAt:    identity.UpdatedAt,
	}
	if ch := identity.Challenge; ch != nil {
		code := ch.Code
		purpose := string(ch.Purpose)
		expiresAt := ch.ExpiresAt
		rec.OTPCode = &code
		rec.OTPPurpose = &purpose
		rec.OTPExpiresAt = &expiresAt
	}
	return rec
}

func toDomainIdentity(rec identityModel) domain.Identity {
	identity := domain.Identity{
		ID:           rec.IdentityID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Verified:     rec.Verified,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	// A challenge row with a missing or unknown purpose is corrupt; treating
	// it as no active challenge is safer than guessing a purpose that could
	// flip the account to verified on consumption.
	if rec.OTPCode != nil && *rec.OTPCode != "" && rec.OTPExpiresAt != nil &&
		rec.OTPPurpose != nil && domain.Purpose(*rec.OTPPurpose).Valid() {
		identity.Challenge = &domain.Challenge{
			Code:      *rec.OTPCode,
			Purpose:   domain.Purpose(*rec.OTPPurpose),
			ExpiresAt: *rec.OTPExpiresAt,
		}
	}
	return identity
}

func toLessonModel(lesson domain.Lesson) (lessonModel, error) {
	exercises := lesson.Exercises
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	raw, err := json.Marshal(exercises)
	if err != nil {
		return lessonModel{}, err
	}
	return lessonModel{
		LessonID:  lesson.ID,
		Title:     lesson.Title,
		Exercises: string(raw),
		CreatedAt: lesson.CreatedAt,
		UpdatedAt: lesson.UpdatedAt,
	}, nil
}

func toDomainLesson(rec lessonModel) (domain.Lesson, error) {
	var exercises []domain.Exercise
	if rec.Exercises != "" {
		if err := json.Unmarshal([]byte(rec.Exercises), &exercises); err != nil {
			return domain.Lesson{}, err
		}
	}
	return domain.Lesson{
		ID:        rec.LessonID,
		Title:     rec.Title,
		Exercises: exercises,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
