package repositories

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/db"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

const gradeTable = "grades"

// gradeDoc is the record store representation of a grade. The student field
// holds a record link back to the owning student.
type gradeDoc struct {
	ID        *surrealmodels.RecordID `json:"id,omitempty"`
	Student   surrealmodels.RecordID  `json:"student"`
	YearLevel int                     `json:"year_level"`
	Subject   string                  `json:"subject"`
	Grade     string                  `json:"grade"`
}

// toModel converts a store document into the domain model
func (d *gradeDoc) toModel() models.Grade {
	g := models.Grade{
		YearLevel: d.YearLevel,
		Subject:   d.Subject,
		Grade:     d.Grade,
	}
	if d.ID != nil {
		g.ID = fmt.Sprintf("%v", d.ID.ID)
	}
	g.StudentID = fmt.Sprintf("%v", d.Student.ID)
	return g
}

// GradeRepository handles record store operations for grades
type GradeRepository struct {
	store *db.SurrealDB
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(store *db.SurrealDB) *GradeRepository {
	return &GradeRepository{
		store: store,
	}
}

func (r *GradeRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.store.Timeout)
}

// Create attaches a new grade to a student record
func (r *GradeRepository) Create(ctx context.Context, studentID string, input models.GradeInput) (*models.Grade, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := gradeDoc{
		Student:   surrealmodels.NewRecordID(studentTable, studentID),
		YearLevel: input.YearLevel,
		Subject:   input.Subject,
		Grade:     input.Grade,
	}

	created, err := surrealdb.Create[gradeDoc](ctx, r.store.DB, gradeTable, doc)
	if err != nil {
		return nil, storeError(err)
	}

	grade := created.toModel()
	return &grade, nil
}

// ListByStudent returns the grades of a student ordered by year level
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT * FROM grades WHERE student = $student ORDER BY year_level, subject`
	params := map[string]any{
		"student": surrealmodels.NewRecordID(studentTable, studentID),
	}

	result, err := surrealdb.Query[[]gradeDoc](ctx, r.store.DB, query, params)
	if err != nil {
		return nil, storeError(err)
	}

	grades := make([]models.Grade, 0)
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			grades = append(grades, (*result)[0].Result[i].toModel())
		}
	}

	return grades, nil
}

// GetByID retrieves a single grade by its store-assigned ID
func (r *GradeRepository) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rid := surrealmodels.NewRecordID(gradeTable, id)
	doc, err := surrealdb.Select[gradeDoc](ctx, r.store.DB, rid)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, storeError(err)
	}
	if doc == nil || doc.ID == nil {
		return nil, apperrors.ErrGradeNotFound
	}

	grade := doc.toModel()
	return &grade, nil
}

// Update rewrites the fields of an existing grade
func (r *GradeRepository) Update(ctx context.Context, id string, input models.GradeInput) (*models.Grade, error) {
	// Confirm existence first so a missing grade is reported as such
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rid := surrealmodels.NewRecordID(gradeTable, id)
	merged, err := surrealdb.Merge[gradeDoc](ctx, r.store.DB, rid, map[string]any{
		"year_level": input.YearLevel,
		"subject":    input.Subject,
		"grade":      input.Grade,
	})
	if err != nil {
		return nil, storeError(err)
	}
	if merged == nil {
		return nil, apperrors.ErrGradeNotFound
	}

	grade := merged.toModel()
	grade.StudentID = existing.StudentID
	return &grade, nil
}

// Delete removes a grade
func (r *GradeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rid := surrealmodels.NewRecordID(gradeTable, id)
	if _, err := surrealdb.Delete[gradeDoc](ctx, r.store.DB, rid); err != nil {
		return storeError(err)
	}

	return nil
}
