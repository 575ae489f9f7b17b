package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
)

type firestoreCourseRepository struct {
	client *firestore.Client
}

func NewFirestoreCourseRepository(client *firestore.Client) repository.CourseRepository {
	return &firestoreCourseRepository{
		client: client,
	}
}

func (r *firestoreCourseRepository) Create(ctx context.Context, course *entity.Course) error {
	if course.ID == "" {
		doc := r.client.Collection("courses").NewDoc()
		course.ID = doc.ID
	}

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err := r.client.Collection("courses").Doc(course.ID).Set(ctx, course)
	if err != nil {
		return errors.Internal("Failed to create course", err)
	}

	return nil
}

func (r *firestoreCourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	doc, err := r.client.Collection("courses").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Course", err)
		}
		return nil, errors.Internal("Failed to get course", err)
	}

	var course entity.Course
	if err := doc.DataTo(&course); err != nil {
		return nil, errors.Internal("Failed to parse course data", err)
	}

	return &course, nil
}

func (r *firestoreCourseRepository) GetBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	iter := r.client.Collection("courses").Where("slug", "==", slug).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Course", nil)
		}
		return nil, errors.Internal("Failed to query course by slug", err)
	}

	var course entity.Course
	if err := doc.DataTo(&course); err != nil {
		return nil, errors.Internal("Failed to parse course data", err)
	}

	return &course, nil
}

func (r *firestoreCourseRepository) Update(ctx context.Context, course *entity.Course) error {
	course.UpdatedAt = time.Now()

	_, err := r.client.Collection("courses").Doc(course.ID).Set(ctx, course)
	if err != nil {
		return errors.Internal("Failed to update course", err)
	}

	return nil
}

func (r *firestoreCourseRepository) IncrementEnrolledCount(ctx context.Context, courseID string) error {
	_, err := r.client.Collection("courses").Doc(courseID).Update(ctx, []firestore.Update{
		{Path: "enrolledCount", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Course", err)
		}
		return errors.Internal("Failed to increment enrolled count", err)
	}

	return nil
}

// Search fetches published courses and filters client-side on title and
// description. Firestore has no full-text search, so the narrowing happens
// in memory after the category and level filters ran server-side.
func (r *firestoreCourseRepository) Search(ctx context.Context, filter repository.CourseSearchFilter, limit, offset int) ([]*entity.Course, int64, error) {
	query := r.client.Collection("courses").Query.Where("isPublished", "==", true)
	if filter.CategoryID != "" {
		query = query.Where("categoryId", "==", filter.CategoryID)
	}
	if filter.Level != "" {
		query = query.Where("level", "==", filter.Level)
	}

	iter := query.Documents(ctx)
	var matches []*entity.Course
	q := strings.ToLower(filter.Query)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate courses", err)
		}

		var course entity.Course
		if err := doc.DataTo(&course); err != nil {
			return nil, 0, errors.Internal("Failed to parse course data", err)
		}

		if q != "" &&
			!strings.Contains(strings.ToLower(course.Title), q) &&
			!strings.Contains(strings.ToLower(course.Description), q) {
			continue
		}

		matches = append(matches, &course)
	}

	switch filter.Sort {
	case "oldest":
		sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	case "popular":
		sort.Slice(matches, func(i, j int) bool { return matches[i].EnrolledCount > matches[j].EnrolledCount })
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	}

	total := int64(len(matches))

	start := offset
	if start > len(matches) {
		start = len(matches)
	}
	end := len(matches)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matches[start:end], total, nil
}

func (r *firestoreCourseRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		doc := r.client.Collection("course_categories").NewDoc()
		category.ID = doc.ID
	}

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.client.Collection("course_categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to create category", err)
	}

	return nil
}

func (r *firestoreCourseRepository) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.client.Collection("course_categories").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	return &category, nil
}

func (r *firestoreCourseRepository) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	iter := r.client.Collection("course_categories").Where("slug", "==", slug).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Category", nil)
		}
		return nil, errors.Internal("Failed to query category by slug", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	return &category, nil
}

func (r *firestoreCourseRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	iter := r.client.Collection("course_categories").OrderBy("name", firestore.Asc).Documents(ctx)
	var categories []*entity.Category

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate categories", err)
		}

		var category entity.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, errors.Internal("Failed to parse category data", err)
		}
		categories = append(categories, &category)
	}

	return categories, nil
}

func (r *firestoreCourseRepository) UpdateCategory(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()

	_, err := r.client.Collection("course_categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to update category", err)
	}

	return nil
}
