package repository

import (
	"context"

	"agricsmart/internal/domain/entity"
)

// CourseSearchFilter narrows a course search. Zero values mean "no filter".
type CourseSearchFilter struct {
	Query      string
	CategoryID string
	Level      string
	Sort       string // "newest", "oldest", "popular"
}

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) error
	// IncrementEnrolledCount bumps the enrollment counter atomically so
	// concurrent enrollments are never lost to a read-modify-write.
	IncrementEnrolledCount(ctx context.Context, courseID string) error
	Search(ctx context.Context, filter CourseSearchFilter, limit, offset int) ([]*entity.Course, int64, error)

	CreateCategory(ctx context.Context, category *entity.Category) error
	GetCategoryByID(ctx context.Context, id string) (*entity.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	UpdateCategory(ctx context.Context, category *entity.Category) error
}

type ProgressRepository interface {
	Create(ctx context.Context, progress *entity.Progress) error
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Progress, error)
	Update(ctx context.Context, progress *entity.Progress) error

	CreateCertificate(ctx context.Context, certificate *entity.Certificate) error
	GetCertificate(ctx context.Context, userID, courseID string) (*entity.Certificate, error)
	GetCertificateByCode(ctx context.Context, code string) (*entity.Certificate, error)
}
