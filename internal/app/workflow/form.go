package workflow

import (
	"strconv"
	"strings"

	"github.com/odemir/studentbook/internal/app/models"
)

// Defaults applied when optional select-style fields arrive empty
const (
	defaultGender = "Male"
	defaultStatus = models.StatusActive
)

// StudentForm carries raw form values for creating a student record
type StudentForm struct {
	StudentID      string
	FullName       string
	DateOfBirth    string
	Gender         string
	Address        string
	PhoneNumber    string
	Email          string
	EnrollmentYear string
	Status         string
	GraduationYear string
}

// EditForm carries raw form values for updating a student record. The
// business student ID is displayed alongside but never submitted.
type EditForm struct {
	FullName       string
	DateOfBirth    string
	Gender         string
	Address        string
	PhoneNumber    string
	Email          string
	EnrollmentYear string
	Status         string
	GraduationYear string
}

// FieldError is a validation failure on a single form field
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors collects validation failures in form order
type FieldErrors []FieldError

// Message joins all field messages into one user-facing line
func (e FieldErrors) Message() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, " ")
}

// trimOrNil trims a form value, mapping an empty result to null
func trimOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseYear parses an optional year field, mapping empty to null
func parseYear(field, s string, errs *FieldErrors) *int {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil {
		*errs = append(*errs, FieldError{Field: field, Message: titleFor(field) + " must be a whole number."})
		return nil
	}
	return &year
}

func titleFor(field string) string {
	switch field {
	case "enrollmentYear":
		return "Enrollment Year"
	case "graduationYear":
		return "Graduation Year"
	}
	return field
}

// parseStatus normalizes the status field, defaulting empties and rejecting
// unknown values
func parseStatus(s string, errs *FieldErrors) models.StudentStatus {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return defaultStatus
	}
	status := models.StudentStatus(trimmed)
	if !models.ValidStatus(status) {
		*errs = append(*errs, FieldError{Field: "status", Message: "Status must be one of: active, graduated, dropped_out, inactive."})
	}
	return status
}

// ParseCreateForm validates and normalizes a create form. A non-empty error
// list means nothing should reach the record store.
func ParseCreateForm(f StudentForm) (models.StudentInput, FieldErrors) {
	var errs FieldErrors

	studentID := strings.TrimSpace(f.StudentID)
	if studentID == "" {
		errs = append(errs, FieldError{Field: "studentId", Message: "Student ID is required."})
	}

	fullName := strings.TrimSpace(f.FullName)
	if fullName == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "Full Name is required."})
	}

	gender := strings.TrimSpace(f.Gender)
	if gender == "" {
		gender = defaultGender
	}

	input := models.StudentInput{
		StudentID:      studentID,
		FullName:       fullName,
		DateOfBirth:    trimOrNil(f.DateOfBirth),
		Gender:         gender,
		Address:        trimOrNil(f.Address),
		PhoneNumber:    trimOrNil(f.PhoneNumber),
		Email:          trimOrNil(f.Email),
		EnrollmentYear: parseYear("enrollmentYear", f.EnrollmentYear, &errs),
		Status:         parseStatus(f.Status, &errs),
		GraduationYear: parseYear("graduationYear", f.GraduationYear, &errs),
	}

	if len(errs) > 0 {
		return models.StudentInput{}, errs
	}
	return input, nil
}

// ParseEditForm validates and normalizes an edit form
func ParseEditForm(f EditForm) (models.StudentUpdate, FieldErrors) {
	var errs FieldErrors

	fullName := strings.TrimSpace(f.FullName)
	if fullName == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "Full Name is required."})
	}

	gender := strings.TrimSpace(f.Gender)
	if gender == "" {
		gender = defaultGender
	}

	update := models.StudentUpdate{
		FullName:       fullName,
		DateOfBirth:    trimOrNil(f.DateOfBirth),
		Gender:         gender,
		Address:        trimOrNil(f.Address),
		PhoneNumber:    trimOrNil(f.PhoneNumber),
		Email:          trimOrNil(f.Email),
		EnrollmentYear: parseYear("enrollmentYear", f.EnrollmentYear, &errs),
		Status:         parseStatus(f.Status, &errs),
		GraduationYear: parseYear("graduationYear", f.GraduationYear, &errs),
	}

	if len(errs) > 0 {
		return models.StudentUpdate{}, errs
	}
	return update, nil
}

// editFormFrom fills an edit form from an existing record so the user edits
// exactly what is stored
func editFormFrom(s *models.Student) EditForm {
	f := EditForm{
		FullName: s.FullName,
		Gender:   s.Gender,
		Status:   string(s.Status),
	}
	if s.DateOfBirth != nil {
		f.DateOfBirth = *s.DateOfBirth
	}
	if s.Address != nil {
		f.Address = *s.Address
	}
	if s.PhoneNumber != nil {
		f.PhoneNumber = *s.PhoneNumber
	}
	if s.Email != nil {
		f.Email = *s.Email
	}
	if s.EnrollmentYear != nil {
		f.EnrollmentYear = strconv.Itoa(*s.EnrollmentYear)
	}
	if s.GraduationYear != nil {
		f.GraduationYear = strconv.Itoa(*s.GraduationYear)
	}
	return f
}
