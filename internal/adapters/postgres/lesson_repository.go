package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/domain"
	"gorm.io/gorm"
)

type lessonRepository struct {
	db *gorm.DB
}

func (r *lessonRepository) Create(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	rec, err := toLessonModel(lesson)
	if err != nil {
		return domain.Lesson{}, err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Lesson{}, err
	}
	return lesson, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lesson, error) {
	var rec lessonModel
	if err := r.db.WithContext(ctx).Where("lesson_id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Lesson{}, domain.ErrNotFound
		}
		return domain.Lesson{}, err
	}
	return toDomainLesson(rec)
}

func (r *lessonRepository) List(ctx context.Context) ([]domain.Lesson, error) {
	var recs []lessonModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	lessons := make([]domain.Lesson, 0, len(recs))
	for _, rec := range recs {
		lesson, err := toDomainLesson(rec)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson domain.Lesson) error {
	rec, err := toLessonModel(lesson)
	if err != nil {
		return err
	}
	rec.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&lessonModel{}).
		Where("lesson_id = ?", rec.LessonID).
		Select("title", "exercises", "updated_at").
		Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("lesson_id = ?", id).Delete(&lessonModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
