package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

type fakeGraduateFinder struct {
	findFn func(ctx context.Context, studentID string) (*models.Student, error)
}

func (f *fakeGraduateFinder) FindGraduate(ctx context.Context, studentID string) (*models.Student, error) {
	return f.findFn(ctx, studentID)
}

type fakeGradeLister struct {
	listFn func(ctx context.Context, studentID string) ([]models.Grade, error)
}

func (f *fakeGradeLister) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	if f.listFn != nil {
		return f.listFn(ctx, studentID)
	}
	return nil, nil
}

func graduatedStudent() *models.Student {
	enrollment := 2019
	graduation := 2023
	phone := "+90 555 000 0000"
	email := "ada@example.com"
	return &models.Student{
		ID:             "rec1",
		StudentID:      "S1024",
		FullName:       "Ada Lovelace",
		Gender:         "Female",
		PhoneNumber:    &phone,
		Email:          &email,
		EnrollmentYear: &enrollment,
		Status:         models.StatusGraduated,
		GraduationYear: &graduation,
	}
}

func TestLookupService(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyInput", func(t *testing.T) {
		svc := NewLookupService(&fakeGraduateFinder{}, &fakeGradeLister{}, zerolog.Nop())

		resp := svc.Lookup(ctx, "   ")

		assert.Equal(t, "warning", resp.Feedback.Level)
		assert.Equal(t, "Please enter a Student ID to search.", resp.Feedback.Message)
		assert.Nil(t, resp.Record)
	})

	t.Run("NotFound", func(t *testing.T) {
		finder := &fakeGraduateFinder{
			findFn: func(ctx context.Context, studentID string) (*models.Student, error) {
				return nil, apperrors.ErrStudentNotFound
			},
		}
		svc := NewLookupService(finder, &fakeGradeLister{}, zerolog.Nop())

		resp := svc.Lookup(ctx, "S9999")

		assert.Equal(t, "warning", resp.Feedback.Level)
		assert.Equal(t, `No graduated student found with ID "S9999".`, resp.Feedback.Message)
		assert.Nil(t, resp.Record)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		finder := &fakeGraduateFinder{
			findFn: func(ctx context.Context, studentID string) (*models.Student, error) {
				return nil, errors.New("store unreachable")
			},
		}
		svc := NewLookupService(finder, &fakeGradeLister{}, zerolog.Nop())

		resp := svc.Lookup(ctx, "S1024")

		assert.Equal(t, "error", resp.Feedback.Level)
		assert.Equal(t, "Error searching records: store unreachable", resp.Feedback.Message)
		assert.Nil(t, resp.Record)
	})

	t.Run("FoundReturnsRestrictedFields", func(t *testing.T) {
		finder := &fakeGraduateFinder{
			findFn: func(ctx context.Context, studentID string) (*models.Student, error) {
				assert.Equal(t, "S1024", studentID)
				return graduatedStudent(), nil
			},
		}
		grades := &fakeGradeLister{
			listFn: func(ctx context.Context, studentID string) ([]models.Grade, error) {
				assert.Equal(t, "rec1", studentID, "grades are keyed by the store record ID")
				return []models.Grade{
					{ID: "g1", StudentID: "rec1", YearLevel: 1, Subject: "Calculus", Grade: "AA"},
					{ID: "g2", StudentID: "rec1", YearLevel: 2, Subject: "Algebra", Grade: "BA"},
				}, nil
			},
		}
		svc := NewLookupService(finder, grades, zerolog.Nop())

		resp := svc.Lookup(ctx, " S1024 ")

		assert.Equal(t, "success", resp.Feedback.Level)
		require.NotNil(t, resp.Record)
		assert.Equal(t, "Ada Lovelace", resp.Record.FullName)
		assert.Equal(t, "S1024", resp.Record.StudentID)
		assert.Equal(t, "graduated", resp.Record.Status)
		require.NotNil(t, resp.Record.EnrollmentYear)
		assert.Equal(t, 2019, *resp.Record.EnrollmentYear)
		require.NotNil(t, resp.Record.GraduationYear)
		assert.Equal(t, 2023, *resp.Record.GraduationYear)

		require.Len(t, resp.Record.Grades, 2)
		assert.Equal(t, "Calculus", resp.Record.Grades[0].Subject)
		assert.Equal(t, "AA", resp.Record.Grades[0].Grade)
	})

	t.Run("GradeFailureStillReturnsRecord", func(t *testing.T) {
		finder := &fakeGraduateFinder{
			findFn: func(ctx context.Context, studentID string) (*models.Student, error) {
				return graduatedStudent(), nil
			},
		}
		grades := &fakeGradeLister{
			listFn: func(ctx context.Context, studentID string) ([]models.Grade, error) {
				return nil, errors.New("grades table missing")
			},
		}
		svc := NewLookupService(finder, grades, zerolog.Nop())

		resp := svc.Lookup(ctx, "S1024")

		assert.Equal(t, "success", resp.Feedback.Level)
		require.NotNil(t, resp.Record)
		assert.Empty(t, resp.Record.Grades)
	})
}
