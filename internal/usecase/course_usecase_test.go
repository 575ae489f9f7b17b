package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricsmart/internal/domain/entity"
	"agricsmart/pkg/errors"
)

func newCourseTestFixture(courses ...*entity.Course) (*CourseUseCase, *fakeCourseRepo, *fakeProgressRepo) {
	userRepo := newFakeUserRepo(
		&entity.User{ID: "educator-1", Role: entity.RoleEducator},
		&entity.User{ID: "farmer-1", Role: entity.RoleBuyer},
	)
	courseRepo := newFakeCourseRepo(courses...)
	progressRepo := newFakeProgressRepo()
	return NewCourseUseCase(courseRepo, progressRepo, userRepo), courseRepo, progressRepo
}

func publishedCourse() *entity.Course {
	return &entity.Course{
		ID:          "c1",
		Title:       "Soil Health Basics",
		Slug:        "soil-health-basics",
		Level:       "Beginner",
		IsPublished: true,
		Modules: []entity.Module{
			{Title: "Week 1", Lessons: []entity.Lesson{
				{ID: "l1", Title: "Testing your soil"},
				{ID: "l2", Title: "Composting"},
			}},
			{Title: "Week 2", Lessons: []entity.Lesson{
				{ID: "l3", Title: "Cover crops"},
			}},
		},
	}
}

func TestCreateCourseRequiresEducatorRole(t *testing.T) {
	uc, _, _ := newCourseTestFixture()

	input := CreateCourseInput{Title: "Irrigation 101", Level: "Beginner"}

	_, err := uc.CreateCourse(context.Background(), "farmer-1", input)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	course, err := uc.CreateCourse(context.Background(), "educator-1", input)
	require.NoError(t, err)
	assert.Equal(t, "irrigation-101", course.Slug)
}

func TestCreateCourseValidatesLevel(t *testing.T) {
	uc, _, _ := newCourseTestFixture()

	_, err := uc.CreateCourse(context.Background(), "educator-1", CreateCourseInput{Title: "Irrigation", Level: "Expert"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateCourseSuffixesSlugOnCollision(t *testing.T) {
	uc, _, _ := newCourseTestFixture()

	input := CreateCourseInput{Title: "Irrigation 101", Level: "Beginner"}

	first, err := uc.CreateCourse(context.Background(), "educator-1", input)
	require.NoError(t, err)

	second, err := uc.CreateCourse(context.Background(), "educator-1", input)
	require.NoError(t, err)

	assert.Equal(t, "irrigation-101", first.Slug)
	assert.Regexp(t, regexp.MustCompile(`^irrigation-101-[0-9a-f]{8}$`), second.Slug)
}

func TestCreateCourseSumsLessonDurations(t *testing.T) {
	uc, _, _ := newCourseTestFixture()

	course, err := uc.CreateCourse(context.Background(), "educator-1", CreateCourseInput{
		Title: "Irrigation 101",
		Level: "Beginner",
		Modules: []ModuleInput{
			{Title: "Week 1", Lessons: []LessonInput{{Title: "Drip lines", Duration: 15}, {Title: "Scheduling", Duration: 20}}},
			{Title: "Week 2", Lessons: []LessonInput{{Title: "Maintenance", Duration: 10}}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 45, course.Duration)
	assert.Equal(t, 3, course.TotalLessons())
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			assert.NotEmpty(t, l.ID)
		}
	}
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	uc, _, _ := newCourseTestFixture()

	_, err := uc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Crop Science"})
	require.NoError(t, err)

	_, err = uc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Crop Science"})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestEnrollIsIdempotent(t *testing.T) {
	uc, courseRepo, _ := newCourseTestFixture(publishedCourse())

	first, err := uc.Enroll(context.Background(), "farmer-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Percent)

	second, err := uc.Enroll(context.Background(), "farmer-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	course, _ := courseRepo.GetByID(context.Background(), "c1")
	assert.Equal(t, 1, course.EnrolledCount)
}

func TestConcurrentEnrollmentsAllCount(t *testing.T) {
	uc, courseRepo, _ := newCourseTestFixture(publishedCourse())

	const learners = 10
	var wg sync.WaitGroup
	for i := 0; i < learners; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := uc.Enroll(context.Background(), fmt.Sprintf("farmer-%d", n), "c1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	course, _ := courseRepo.GetByID(context.Background(), "c1")
	assert.Equal(t, learners, course.EnrolledCount)
}

func TestEnrollRejectsUnpublishedCourse(t *testing.T) {
	course := publishedCourse()
	course.IsPublished = false
	uc, _, _ := newCourseTestFixture(course)

	_, err := uc.Enroll(context.Background(), "farmer-1", "c1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCompleteLessonTracksPercent(t *testing.T) {
	uc, _, _ := newCourseTestFixture(publishedCourse())

	_, err := uc.Enroll(context.Background(), "farmer-1", "c1")
	require.NoError(t, err)

	progress, err := uc.CompleteLesson(context.Background(), "farmer-1", "c1", "l1")
	require.NoError(t, err)
	assert.Equal(t, 33, progress.Percent)

	// Completing the same lesson again changes nothing.
	progress, err = uc.CompleteLesson(context.Background(), "farmer-1", "c1", "l1")
	require.NoError(t, err)
	assert.Equal(t, 33, progress.Percent)
	assert.Len(t, progress.CompletedLessons, 1)

	progress, err = uc.CompleteLesson(context.Background(), "farmer-1", "c1", "l2")
	require.NoError(t, err)
	assert.Equal(t, 66, progress.Percent)
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	uc, _, _ := newCourseTestFixture(publishedCourse())

	_, err := uc.CompleteLesson(context.Background(), "farmer-1", "c1", "l1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCompleteLessonRejectsUnknownLesson(t *testing.T) {
	uc, _, _ := newCourseTestFixture(publishedCourse())

	_, err := uc.Enroll(context.Background(), "farmer-1", "c1")
	require.NoError(t, err)

	_, err = uc.CompleteLesson(context.Background(), "farmer-1", "c1", "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestCertificateIssuedOnceAtFullCompletion(t *testing.T) {
	uc, _, progressRepo := newCourseTestFixture(publishedCourse())

	_, err := uc.Enroll(context.Background(), "farmer-1", "c1")
	require.NoError(t, err)

	for _, lesson := range []string{"l1", "l2"} {
		_, err = uc.CompleteLesson(context.Background(), "farmer-1", "c1", lesson)
		require.NoError(t, err)
	}

	_, err = uc.GetCertificate(context.Background(), "farmer-1", "c1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	progress, err := uc.CompleteLesson(context.Background(), "farmer-1", "c1", "l3")
	require.NoError(t, err)
	assert.Equal(t, 100, progress.Percent)

	certificate, err := uc.GetCertificate(context.Background(), "farmer-1", "c1")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^CERT-[0-9A-F]{8}$`), certificate.Code)

	firstCode := certificate.Code
	assert.Len(t, progressRepo.certificates, 1)

	// Redundant completion after 100% must not mint a second certificate.
	_, err = uc.CompleteLesson(context.Background(), "farmer-1", "c1", "l3")
	require.NoError(t, err)

	certificate, err = uc.GetCertificate(context.Background(), "farmer-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, firstCode, certificate.Code)
	assert.Len(t, progressRepo.certificates, 1)
}

func TestVerifyCertificateByCode(t *testing.T) {
	uc, _, progressRepo := newCourseTestFixture(publishedCourse())
	progressRepo.CreateCertificate(context.Background(), &entity.Certificate{
		UserID:   "farmer-1",
		CourseID: "c1",
		Code:     "CERT-AB12CD34",
	})

	certificate, err := uc.VerifyCertificate(context.Background(), "CERT-AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", certificate.UserID)

	_, err = uc.VerifyCertificate(context.Background(), "CERT-00000000")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
