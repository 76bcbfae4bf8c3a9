package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/db"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

const studentTable = "students"

// studentDoc is the record store representation of a student.
// The id field is assigned by the store; created_at and updated_at are set
// with time::now() inside the queries so the store clock is authoritative.
type studentDoc struct {
	ID             *surrealmodels.RecordID `json:"id,omitempty"`
	StudentID      string                  `json:"student_id"`
	FullName       string                  `json:"full_name"`
	DateOfBirth    *string                 `json:"date_of_birth"`
	Gender         string                  `json:"gender"`
	Address        *string                 `json:"address"`
	PhoneNumber    *string                 `json:"phone_number"`
	Email          *string                 `json:"email"`
	EnrollmentYear *int                    `json:"enrollment_year"`
	Status         string                  `json:"status"`
	GraduationYear *int                    `json:"graduation_year"`
	CreatedBy      string                  `json:"created_by"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      *time.Time              `json:"updated_at,omitempty"`
}

// toModel converts a store document into the domain model
func (d *studentDoc) toModel() models.Student {
	s := models.Student{
		StudentID:      d.StudentID,
		FullName:       d.FullName,
		DateOfBirth:    d.DateOfBirth,
		Gender:         d.Gender,
		Address:        d.Address,
		PhoneNumber:    d.PhoneNumber,
		Email:          d.Email,
		EnrollmentYear: d.EnrollmentYear,
		Status:         models.StudentStatus(d.Status),
		GraduationYear: d.GraduationYear,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.ID != nil {
		s.ID = fmt.Sprintf("%v", d.ID.ID)
	}
	return s
}

// StudentRepository handles record store operations for student records.
// Every call is wrapped in the configured store timeout.
type StudentRepository struct {
	store *db.SurrealDB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(store *db.SurrealDB) *StudentRepository {
	return &StudentRepository{
		store: store,
	}
}

// withTimeout bounds a store call with the configured timeout
func (r *StudentRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.store.Timeout)
}

// storeError classifies a record store failure, keeping the original
// message intact for the response layer
func storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewCustomError(apperrors.ErrStoreTimeout, "record store did not respond in time")
	}
	return apperrors.NewStoreError(err)
}

// isNotFound reports whether a store error means the record does not exist
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
		strings.Contains(errStr, "cannot unmarshal array into Go value")
}

// Create inserts a new student record and returns its store-assigned ID.
// The creation timestamp comes from the store clock, not the application.
func (r *StudentRepository) Create(ctx context.Context, input models.StudentInput, createdBy string) (string, error) {
	if input.StudentID == "" || input.FullName == "" {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed, "student ID and full name are required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `CREATE ONLY students SET
		student_id = $student_id,
		full_name = $full_name,
		date_of_birth = $date_of_birth,
		gender = $gender,
		address = $address,
		phone_number = $phone_number,
		email = $email,
		enrollment_year = $enrollment_year,
		status = $status,
		graduation_year = $graduation_year,
		created_by = $created_by,
		created_at = time::now()`

	params := map[string]any{
		"student_id":      input.StudentID,
		"full_name":       input.FullName,
		"date_of_birth":   input.DateOfBirth,
		"gender":          input.Gender,
		"address":         input.Address,
		"phone_number":    input.PhoneNumber,
		"email":           input.Email,
		"enrollment_year": input.EnrollmentYear,
		"status":          string(input.Status),
		"graduation_year": input.GraduationYear,
		"created_by":      createdBy,
	}

	result, err := surrealdb.Query[studentDoc](ctx, r.store.DB, query, params)
	if err != nil {
		return "", storeError(err)
	}

	if result == nil || len(*result) == 0 || (*result)[0].Result.ID == nil {
		return "", apperrors.NewStoreError(errors.New("create returned no record"))
	}

	return fmt.Sprintf("%v", (*result)[0].Result.ID.ID), nil
}

// ListByCreationDesc returns all student records, newest first
func (r *StudentRepository) ListByCreationDesc(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT * FROM students ORDER BY created_at DESC`

	result, err := surrealdb.Query[[]studentDoc](ctx, r.store.DB, query, nil)
	if err != nil {
		return nil, storeError(err)
	}

	students := make([]models.Student, 0)
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			students = append(students, (*result)[0].Result[i].toModel())
		}
	}

	return students, nil
}

// GetByID retrieves a single student record by its store-assigned ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rid := surrealmodels.NewRecordID(studentTable, id)
	doc, err := surrealdb.Select[studentDoc](ctx, r.store.DB, rid)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, storeError(err)
	}
	if doc == nil || doc.ID == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	student := doc.toModel()
	return &student, nil
}

// Update rewrites the editable fields of a student record. The business
// student ID is never touched; updated_at is set from the store clock.
func (r *StudentRepository) Update(ctx context.Context, id string, changes models.StudentUpdate) error {
	if changes.FullName == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "full name is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE $record SET
		full_name = $full_name,
		date_of_birth = $date_of_birth,
		gender = $gender,
		address = $address,
		phone_number = $phone_number,
		email = $email,
		enrollment_year = $enrollment_year,
		status = $status,
		graduation_year = $graduation_year,
		updated_at = time::now()`

	params := map[string]any{
		"record":          surrealmodels.NewRecordID(studentTable, id),
		"full_name":       changes.FullName,
		"date_of_birth":   changes.DateOfBirth,
		"gender":          changes.Gender,
		"address":         changes.Address,
		"phone_number":    changes.PhoneNumber,
		"email":           changes.Email,
		"enrollment_year": changes.EnrollmentYear,
		"status":          string(changes.Status),
		"graduation_year": changes.GraduationYear,
	}

	result, err := surrealdb.Query[[]studentDoc](ctx, r.store.DB, query, params)
	if err != nil {
		return storeError(err)
	}

	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student record together with its grades. Both deletes run
// in a single query so they share one transaction scope.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	// Confirm existence first so a missing record is reported as such
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE $record; DELETE grades WHERE student = $record;`
	params := map[string]any{
		"record": surrealmodels.NewRecordID(studentTable, id),
	}

	if _, err := surrealdb.Query[any](ctx, r.store.DB, query, params); err != nil {
		return storeError(err)
	}

	return nil
}

// Search finds students whose name or business ID contains the term,
// case-insensitively. by selects the field: "name" or "id".
func (r *StudentRepository) Search(ctx context.Context, term, by string) ([]models.Student, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var query string
	switch by {
	case "id":
		query = `SELECT * FROM students
			WHERE string::contains(string::lowercase(student_id), string::lowercase($term))
			ORDER BY created_at DESC`
	default:
		query = `SELECT * FROM students
			WHERE string::contains(string::lowercase(full_name), string::lowercase($term))
			ORDER BY created_at DESC`
	}

	params := map[string]any{
		"term": term,
	}

	result, err := surrealdb.Query[[]studentDoc](ctx, r.store.DB, query, params)
	if err != nil {
		return nil, storeError(err)
	}

	students := make([]models.Student, 0)
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			students = append(students, (*result)[0].Result[i].toModel())
		}
	}

	return students, nil
}

// filterableFields lists the document fields FindFiltered accepts, in the
// order they appear in the generated WHERE clause
var filterableFields = []string{"student_id", "status", "gender", "enrollment_year", "graduation_year"}

// FindFiltered returns students matching every given field equality. Filter
// keys outside the filterable set are rejected rather than ignored.
func (r *StudentRepository) FindFiltered(ctx context.Context, filters map[string]any) ([]models.Student, error) {
	if len(filters) == 0 {
		return r.ListByCreationDesc(ctx)
	}

	var conditions []string
	params := map[string]any{}
	for _, field := range filterableFields {
		value, ok := filters[field]
		if !ok {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%s", field, field))
		params[field] = value
	}
	if len(conditions) != len(filters) {
		return nil, apperrors.NewBadRequestError("unsupported filter field")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT * FROM students WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC`

	result, err := surrealdb.Query[[]studentDoc](ctx, r.store.DB, query, params)
	if err != nil {
		return nil, storeError(err)
	}

	students := make([]models.Student, 0)
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			students = append(students, (*result)[0].Result[i].toModel())
		}
	}

	return students, nil
}

// FindGraduate returns the first student matching the business student ID
// whose status is graduated
func (r *StudentRepository) FindGraduate(ctx context.Context, studentID string) (*models.Student, error) {
	students, err := r.FindFiltered(ctx, map[string]any{
		"student_id": studentID,
		"status":     string(models.StatusGraduated),
	})
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return &students[0], nil
}
