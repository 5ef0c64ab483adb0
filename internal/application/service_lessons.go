package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/domain"
)

// Lesson use cases are plain catalogue CRUD. The only coupling to the auth
// core is the authenticated identity id, used to record and flag completion.

func (s *Service) ListLessons(ctx context.Context, identityID uuid.UUID) ([]LessonItem, error) {
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, err
	}

	completed := map[uuid.UUID]bool{}
	if identityID != uuid.Nil {
		ids, err := s.identities.ListCompletedLessonIDs(ctx, identityID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			completed[id] = true
		}
	}

	items := make([]LessonItem, 0, len(lessons))
	for _, lesson := range lessons {
		items = append(items, toLessonItem(lesson, completed[lesson.ID]))
	}
	return items, nil
}

func (s *Service) GetLesson(ctx context.Context, identityID, id uuid.UUID) (LessonItem, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return LessonItem{}, err
	}
	completed, err := s.lessonCompleted(ctx, identityID, id)
	if err != nil {
		return LessonItem{}, err
	}
	return toLessonItem(lesson, completed), nil
}

func (s *Service) CreateLesson(ctx context.Context, input LessonInput) (LessonItem, error) {
	if input.Title == "" || len(input.Exercises) == 0 {
		return LessonItem{}, fmt.Errorf("%w: title and exercises are required", domain.ErrInvalidInput)
	}
	now := s.nowFn()
	lesson, err := s.lessons.Create(ctx, domain.Lesson{
		ID:        uuid.New(),
		Title:     input.Title,
		Exercises: input.Exercises,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return LessonItem{}, err
	}
	return toLessonItem(lesson, false), nil
}

func (s *Service) UpdateLesson(ctx context.Context, identityID, id uuid.UUID, input LessonInput) (LessonItem, error) {
	if input.Title == "" || len(input.Exercises) == 0 {
		return LessonItem{}, fmt.Errorf("%w: title and exercises are required", domain.ErrInvalidInput)
	}
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return LessonItem{}, err
	}
	lesson.Title = input.Title
	lesson.Exercises = input.Exercises
	lesson.UpdatedAt = s.nowFn()
	if err := s.lessons.Update(ctx, lesson); err != nil {
		return LessonItem{}, err
	}
	completed, err := s.lessonCompleted(ctx, identityID, id)
	if err != nil {
		return LessonItem{}, err
	}
	return toLessonItem(lesson, completed), nil
}

func (s *Service) lessonCompleted(ctx context.Context, identityID, lessonID uuid.UUID) (bool, error) {
	if identityID == uuid.Nil {
		return false, nil
	}
	ids, err := s.identities.ListCompletedLessonIDs(ctx, identityID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == lessonID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	return s.lessons.Delete(ctx, id)
}

// CompleteLesson appends the lesson to the identity's completed set.
// Completing an already-completed lesson is a no-op.
func (s *Service) CompleteLesson(ctx context.Context, identityID, lessonID uuid.UUID) error {
	if identityID == uuid.Nil {
		return domain.ErrUnauthorized
	}
	if _, err := s.lessons.GetByID(ctx, lessonID); err != nil {
		return err
	}
	return s.identities.MarkLessonCompleted(ctx, identityID, lessonID)
}
