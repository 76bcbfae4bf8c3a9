package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/app/repositories"
)

// GradeService manages per-subject grades attached to student records
type GradeService interface {
	Add(ctx context.Context, studentRecordID string, req dto.GradeRequest) (*models.Grade, error)
	List(ctx context.Context, studentRecordID string) ([]models.Grade, error)
	Update(ctx context.Context, gradeID string, req dto.GradeRequest) (*models.Grade, error)
	Remove(ctx context.Context, gradeID string) error
}

type gradeService struct {
	students *repositories.StudentRepository
	grades   *repositories.GradeRepository
	logger   zerolog.Logger
}

// NewGradeService creates a new grade service
func NewGradeService(students *repositories.StudentRepository, grades *repositories.GradeRepository, logger zerolog.Logger) GradeService {
	return &gradeService{
		students: students,
		grades:   grades,
		logger:   logger,
	}
}

// Add attaches a grade to an existing student record
func (s *gradeService) Add(ctx context.Context, studentRecordID string, req dto.GradeRequest) (*models.Grade, error) {
	// The owning record must exist
	if _, err := s.students.GetByID(ctx, studentRecordID); err != nil {
		return nil, err
	}

	grade, err := s.grades.Create(ctx, studentRecordID, models.GradeInput{
		YearLevel: req.YearLevel,
		Subject:   req.Subject,
		Grade:     req.Grade,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("record", studentRecordID).Str("subject", req.Subject).Msg("Grade added")
	return grade, nil
}

// List returns the grades of a student record
func (s *gradeService) List(ctx context.Context, studentRecordID string) ([]models.Grade, error) {
	if _, err := s.students.GetByID(ctx, studentRecordID); err != nil {
		return nil, err
	}

	return s.grades.ListByStudent(ctx, studentRecordID)
}

// Update rewrites an existing grade
func (s *gradeService) Update(ctx context.Context, gradeID string, req dto.GradeRequest) (*models.Grade, error) {
	grade, err := s.grades.Update(ctx, gradeID, models.GradeInput{
		YearLevel: req.YearLevel,
		Subject:   req.Subject,
		Grade:     req.Grade,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("grade", gradeID).Msg("Grade updated")
	return grade, nil
}

// Remove deletes a grade
func (s *gradeService) Remove(ctx context.Context, gradeID string) error {
	if err := s.grades.Delete(ctx, gradeID); err != nil {
		return err
	}

	s.logger.Info().Str("grade", gradeID).Msg("Grade removed")
	return nil
}
