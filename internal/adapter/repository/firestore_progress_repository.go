package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
)

type firestoreProgressRepository struct {
	client *firestore.Client
}

func NewFirestoreProgressRepository(client *firestore.Client) repository.ProgressRepository {
	return &firestoreProgressRepository{
		client: client,
	}
}

// Progress docs are keyed by userID_courseID so each enrollment is a single
// document and re-enrolling cannot create duplicates.
func progressDocID(userID, courseID string) string {
	return userID + "_" + courseID
}

func (r *firestoreProgressRepository) Create(ctx context.Context, progress *entity.Progress) error {
	if progress.ID == "" {
		progress.ID = progressDocID(progress.UserID, progress.CourseID)
	}

	now := time.Now()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	_, err := r.client.Collection("course_progress").Doc(progress.ID).Set(ctx, progress)
	if err != nil {
		return errors.Internal("Failed to create progress", err)
	}

	return nil
}

func (r *firestoreProgressRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Progress, error) {
	doc, err := r.client.Collection("course_progress").Doc(progressDocID(userID, courseID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Progress", nil)
		}
		return nil, errors.Internal("Failed to get progress", err)
	}

	var progress entity.Progress
	if err := doc.DataTo(&progress); err != nil {
		return nil, errors.Internal("Failed to parse progress data", err)
	}

	return &progress, nil
}

func (r *firestoreProgressRepository) Update(ctx context.Context, progress *entity.Progress) error {
	progress.UpdatedAt = time.Now()

	_, err := r.client.Collection("course_progress").Doc(progress.ID).Set(ctx, progress)
	if err != nil {
		return errors.Internal("Failed to update progress", err)
	}

	return nil
}

func (r *firestoreProgressRepository) CreateCertificate(ctx context.Context, certificate *entity.Certificate) error {
	if certificate.ID == "" {
		certificate.ID = progressDocID(certificate.UserID, certificate.CourseID)
	}
	if certificate.IssuedAt.IsZero() {
		certificate.IssuedAt = time.Now()
	}

	_, err := r.client.Collection("certificates").Doc(certificate.ID).Set(ctx, certificate)
	if err != nil {
		return errors.Internal("Failed to create certificate", err)
	}

	return nil
}

func (r *firestoreProgressRepository) GetCertificate(ctx context.Context, userID, courseID string) (*entity.Certificate, error) {
	doc, err := r.client.Collection("certificates").Doc(progressDocID(userID, courseID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Certificate", nil)
		}
		return nil, errors.Internal("Failed to get certificate", err)
	}

	var certificate entity.Certificate
	if err := doc.DataTo(&certificate); err != nil {
		return nil, errors.Internal("Failed to parse certificate data", err)
	}

	return &certificate, nil
}

func (r *firestoreProgressRepository) GetCertificateByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	iter := r.client.Collection("certificates").Where("code", "==", code).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Certificate", nil)
		}
		return nil, errors.Internal("Failed to query certificate by code", err)
	}

	var certificate entity.Certificate
	if err := doc.DataTo(&certificate); err != nil {
		return nil, errors.Internal("Failed to parse certificate data", err)
	}

	return &certificate, nil
}
