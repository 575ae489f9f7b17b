package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
)

type CourseUseCase struct {
	courseRepo   repository.CourseRepository
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
}

func NewCourseUseCase(
	courseRepo repository.CourseRepository,
	progressRepo repository.ProgressRepository,
	userRepo repository.UserRepository,
) *CourseUseCase {
	return &CourseUseCase{
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

type LessonInput struct {
	Title    string
	Content  string
	VideoURL string
	Duration int
}

type ModuleInput struct {
	Title       string
	Description string
	Lessons     []LessonInput
}

type CreateCourseInput struct {
	Title       string
	Description string
	CategoryID  string
	Thumbnail   string
	Level       string
	Modules     []ModuleInput
}

func validCourseLevel(level string) bool {
	switch level {
	case "Beginner", "Intermediate", "Advanced":
		return true
	}
	return false
}

func (uc *CourseUseCase) CreateCourse(ctx context.Context, instructorID string, input CreateCourseInput) (*entity.Course, error) {
	instructor, err := uc.userRepo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, errors.NotFound("Instructor", err)
	}
	if instructor.Role != entity.RoleEducator && instructor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only educators can create courses", nil)
	}

	if input.Title == "" {
		return nil, errors.BadRequest("Course title is required", nil)
	}
	if !validCourseLevel(input.Level) {
		return nil, errors.BadRequest("Level must be Beginner, Intermediate or Advanced", nil)
	}

	if input.CategoryID != "" {
		if _, err := uc.courseRepo.GetCategoryByID(ctx, input.CategoryID); err != nil {
			return nil, errors.BadRequest("Invalid category", err)
		}
	}

	courseSlug := slug.Make(input.Title)
	if _, err := uc.courseRepo.GetBySlug(ctx, courseSlug); err == nil {
		// Slug collision: suffix a short random token.
		courseSlug = courseSlug + "-" + uuid.New().String()[:8]
	}

	modules, duration := buildModules(input.Modules)

	course := &entity.Course{
		Title:        input.Title,
		Slug:         courseSlug,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		InstructorID: instructorID,
		Thumbnail:    input.Thumbnail,
		Duration:     duration,
		Level:        input.Level,
		Modules:      modules,
	}

	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// buildModules converts module input into entities, assigning each lesson a
// stable id and summing lesson durations.
func buildModules(inputs []ModuleInput) ([]entity.Module, int) {
	modules := make([]entity.Module, 0, len(inputs))
	duration := 0
	for _, m := range inputs {
		lessons := make([]entity.Lesson, 0, len(m.Lessons))
		for _, l := range m.Lessons {
			lessons = append(lessons, entity.Lesson{
				ID:       uuid.New().String(),
				Title:    l.Title,
				Content:  l.Content,
				VideoURL: l.VideoURL,
				Duration: l.Duration,
			})
			duration += l.Duration
		}
		modules = append(modules, entity.Module{
			Title:       m.Title,
			Description: m.Description,
			Lessons:     lessons,
		})
	}
	return modules, duration
}

type UpdateCourseInput struct {
	Title       string
	Description string
	CategoryID  string
	Thumbnail   string
	Level       string
	Modules     []ModuleInput
	IsPublished *bool
}

func (uc *CourseUseCase) UpdateCourse(ctx context.Context, courseID, instructorID string, input UpdateCourseInput) (*entity.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if course.InstructorID != instructorID {
		return nil, errors.Forbidden("You don't have permission to update this course", nil)
	}

	if input.Title != "" && input.Title != course.Title {
		course.Title = input.Title
		// The slug tracks the title so shared links stay readable.
		newSlug := slug.Make(input.Title)
		if existing, err := uc.courseRepo.GetBySlug(ctx, newSlug); err != nil || existing.ID == course.ID {
			course.Slug = newSlug
		} else {
			course.Slug = newSlug + "-" + uuid.New().String()[:8]
		}
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.CategoryID != "" {
		if _, err := uc.courseRepo.GetCategoryByID(ctx, input.CategoryID); err != nil {
			return nil, errors.BadRequest("Invalid category", err)
		}
		course.CategoryID = input.CategoryID
	}
	if input.Thumbnail != "" {
		course.Thumbnail = input.Thumbnail
	}
	if input.Level != "" {
		if !validCourseLevel(input.Level) {
			return nil, errors.BadRequest("Level must be Beginner, Intermediate or Advanced", nil)
		}
		course.Level = input.Level
	}
	if input.Modules != nil {
		course.Modules, course.Duration = buildModules(input.Modules)
	}
	if input.IsPublished != nil {
		course.IsPublished = *input.IsPublished
	}

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// GetCourse accepts either a document id or a slug.
func (uc *CourseUseCase) GetCourse(ctx context.Context, idOrSlug string) (*entity.Course, error) {
	if course, err := uc.courseRepo.GetBySlug(ctx, idOrSlug); err == nil {
		return course, nil
	}
	return uc.courseRepo.GetByID(ctx, idOrSlug)
}

func (uc *CourseUseCase) SearchCourses(ctx context.Context, filter repository.CourseSearchFilter, limit, offset int) ([]*entity.Course, int64, error) {
	return uc.courseRepo.Search(ctx, filter, limit, offset)
}

type CreateCategoryInput struct {
	Name        string
	Description string
}

func (uc *CourseUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, errors.BadRequest("Category name is required", nil)
	}

	categorySlug := slug.Make(input.Name)
	if _, err := uc.courseRepo.GetCategoryBySlug(ctx, categorySlug); err == nil {
		return nil, errors.Conflict("A category with this name already exists")
	}

	category := &entity.Category{
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
	}

	if err := uc.courseRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CourseUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.courseRepo.ListCategories(ctx)
}

// Enroll creates an empty progress record for the user. Enrolling twice is a
// no-op returning the existing progress.
func (uc *CourseUseCase) Enroll(ctx context.Context, userID, courseID string) (*entity.Progress, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, errors.BadRequest("Course is not published", nil)
	}

	if existing, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, courseID); err == nil {
		return existing, nil
	}

	progress := &entity.Progress{
		UserID:           userID,
		CourseID:         courseID,
		CompletedLessons: []string{},
		Percent:          0,
	}

	if err := uc.progressRepo.Create(ctx, progress); err != nil {
		return nil, err
	}

	if err := uc.courseRepo.IncrementEnrolledCount(ctx, courseID); err != nil {
		return nil, err
	}

	return progress, nil
}

func (uc *CourseUseCase) GetProgress(ctx context.Context, userID, courseID string) (*entity.Progress, error) {
	return uc.progressRepo.GetByUserAndCourse(ctx, userID, courseID)
}

// CompleteLesson records a lesson completion, recomputes the percentage and
// issues a certificate the first time progress reaches 100%.
func (uc *CourseUseCase) CompleteLesson(ctx context.Context, userID, courseID, lessonID string) (*entity.Progress, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.FindLesson(lessonID) == nil {
		return nil, errors.NotFound("Lesson", nil)
	}

	progress, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, errors.BadRequest("You are not enrolled in this course", err)
	}

	for _, completed := range progress.CompletedLessons {
		if completed == lessonID {
			return progress, nil
		}
	}

	progress.CompletedLessons = append(progress.CompletedLessons, lessonID)

	total := course.TotalLessons()
	if total > 0 {
		progress.Percent = len(progress.CompletedLessons) * 100 / total
	}

	if err := uc.progressRepo.Update(ctx, progress); err != nil {
		return nil, err
	}

	if progress.Percent >= 100 {
		if err := uc.issueCertificate(ctx, userID, courseID); err != nil {
			return nil, err
		}
	}

	return progress, nil
}

// issueCertificate creates a certificate unless one already exists.
func (uc *CourseUseCase) issueCertificate(ctx context.Context, userID, courseID string) error {
	if _, err := uc.progressRepo.GetCertificate(ctx, userID, courseID); err == nil {
		return nil
	}

	certificate := &entity.Certificate{
		UserID:   userID,
		CourseID: courseID,
		Code:     "CERT-" + strings.ToUpper(uuid.New().String()[:8]),
		IssuedAt: time.Now(),
	}

	return uc.progressRepo.CreateCertificate(ctx, certificate)
}

func (uc *CourseUseCase) GetCertificate(ctx context.Context, userID, courseID string) (*entity.Certificate, error) {
	return uc.progressRepo.GetCertificate(ctx, userID, courseID)
}

// VerifyCertificate resolves a certificate by its public code.
func (uc *CourseUseCase) VerifyCertificate(ctx context.Context, code string) (*entity.Certificate, error) {
	return uc.progressRepo.GetCertificateByCode(ctx, code)
}
