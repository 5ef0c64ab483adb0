package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/domain"
)

// IdentityRepository defines persistence operations for identities.
//
// Save replaces the whole identity row atomically, challenge slot included.
// Two concurrent saves for the same identity race at the store and the last
// write wins, which is exactly the single-slot challenge semantics: only the
// most recently issued code is ever valid.
type IdentityRepository interface {
	// Create inserts a new identity. The store enforces email uniqueness and
	// a violation is reported as domain.ErrEmailTaken.
	Create(ctx context.Context, identity domain.Identity) (domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (domain.Identity, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Identity, error)
	Save(ctx context.Context, identity domain.Identity) error

	// MarkLessonCompleted appends a lesson reference to the identity's
	// completed set. Recording the same lesson twice is a no-op.
	MarkLessonCompleted(ctx context.Context, identityID, lessonID uuid.UUID) error
	ListCompletedLessonIDs(ctx context.Context, identityID uuid.UUID) ([]uuid.UUID, error)
}

// LessonRepository is the catalogue CRUD boundary. No auth logic lives here.
type LessonRepository interface {
	Create(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lesson, error)
	List(ctx context.Context) ([]domain.Lesson, error)
	Update(ctx context.Context, lesson domain.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
}
