package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

// GraduateFinder is the store surface the public lookup needs
type GraduateFinder interface {
	FindGraduate(ctx context.Context, studentID string) (*models.Student, error)
}

// GradeLister lists the grades attached to a student record
type GradeLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
}

// LookupService resolves public graduate verification queries. Only records
// with graduated status are ever returned, and only a restricted field set.
type LookupService interface {
	Lookup(ctx context.Context, studentID string) *dto.LookupResponse
}

type lookupService struct {
	students GraduateFinder
	grades   GradeLister
	logger   zerolog.Logger
}

// NewLookupService creates a new public lookup service
func NewLookupService(students GraduateFinder, grades GradeLister, logger zerolog.Logger) LookupService {
	return &lookupService{
		students: students,
		grades:   grades,
		logger:   logger,
	}
}

// Lookup searches for a graduated student by business student ID. Every
// outcome is expressed as feedback; a missing record is a normal result,
// not an error.
func (s *lookupService) Lookup(ctx context.Context, studentID string) *dto.LookupResponse {
	term := strings.TrimSpace(studentID)
	if term == "" {
		return &dto.LookupResponse{
			Feedback: dto.FeedbackView{
				Level:   "warning",
				Message: "Please enter a Student ID to search.",
			},
		}
	}

	student, err := s.students.FindGraduate(ctx, term)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return &dto.LookupResponse{
				Feedback: dto.FeedbackView{
					Level:   "warning",
					Message: fmt.Sprintf("No graduated student found with ID %q.", term),
				},
			}
		}
		s.logger.Error().Err(err).Str("studentId", term).Msg("Graduate lookup failed")
		return &dto.LookupResponse{
			Feedback: dto.FeedbackView{
				Level:   "error",
				Message: "Error searching records: " + err.Error(),
			},
		}
	}

	record := &dto.GraduateRecordView{
		FullName:       student.FullName,
		StudentID:      student.StudentID,
		Status:         string(student.Status),
		EnrollmentYear: student.EnrollmentYear,
		GraduationYear: student.GraduationYear,
	}

	grades, err := s.grades.ListByStudent(ctx, student.ID)
	if err != nil {
		// The record itself is still worth showing
		s.logger.Warn().Err(err).Str("record", student.ID).Msg("Failed to load grades for graduate record")
	} else {
		for _, g := range grades {
			record.Grades = append(record.Grades, dto.GradeView{
				YearLevel: g.YearLevel,
				Subject:   g.Subject,
				Grade:     g.Grade,
			})
		}
	}

	return &dto.LookupResponse{
		Feedback: dto.FeedbackView{
			Level:   "success",
			Message: fmt.Sprintf("Graduated student record found for ID %q.", term),
		},
		Record: record,
	}
}
