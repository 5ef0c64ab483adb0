package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type identityRepository struct {
	db *gorm.DB
}

func (r *identityRepository) Create(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	rec := toIdentityModel(identity)
	rec.UpdatedAt = rec.CreatedAt
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Identity{}, domain.ErrEmailTaken
		}
		return domain.Identity{}, err
	}
	return toDomainIdentity(rec), nil
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (domain.Identity, error) {
	var rec identityModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, domain.ErrNotFound
		}
		return domain.Identity{}, err
	}
	return toDomainIdentity(rec), nil
}

func (r *identityRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Identity, error) {
	var rec identityModel
	if err := r.db.WithContext(ctx).Where("identity_id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, domain.ErrNotFound
		}
		return domain.Identity{}, err
	}
	return toDomainIdentity(rec), nil
}

// Save replaces the full row in one UPDATE, challenge columns included.
// The per-row write is atomic, which is what gives the challenge slot its
// last-write-wins behavior under concurrent issues.
func (r *identityRepository) Save(ctx context.Context, identity domain.Identity) error {
	rec := toIdentityModel(identity)
	rec.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&identityModel{}).
		Where("identity_id = ?", rec.IdentityID).
		Select("email", "password_hash", "verified", "otp_code", "otp_purpose", "otp_expires_at", "updated_at").
		Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *identityRepository) MarkLessonCompleted(ctx context.Context, identityID, lessonID uuid.UUID) error {
	rec := completedLessonModel{
		IdentityID:  identityID,
		LessonID:    lessonID,
		CompletedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).Error
}

func (r *identityRepository) ListCompletedLessonIDs(ctx context.Context, identityID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&completedLessonModel{}).
		Where("identity_id = ?", identityID).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
