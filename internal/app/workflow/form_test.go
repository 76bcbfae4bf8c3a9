package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odemir/studentbook/internal/app/models"
)

func TestParseCreateForm(t *testing.T) {
	t.Run("ValidForm", func(t *testing.T) {
		input, errs := ParseCreateForm(StudentForm{
			StudentID:      " S1024 ",
			FullName:       " Ada Lovelace ",
			Gender:         "Female",
			EnrollmentYear: "2019",
			Status:         "active",
		})

		require.Empty(t, errs)
		assert.Equal(t, "S1024", input.StudentID)
		assert.Equal(t, "Ada Lovelace", input.FullName)
		assert.Equal(t, "Female", input.Gender)
		require.NotNil(t, input.EnrollmentYear)
		assert.Equal(t, 2019, *input.EnrollmentYear)
		assert.Equal(t, models.StatusActive, input.Status)
		assert.Nil(t, input.GraduationYear)
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		_, errs := ParseCreateForm(StudentForm{})

		require.Len(t, errs, 2)
		assert.Equal(t, "studentId", errs[0].Field)
		assert.Equal(t, "fullName", errs[1].Field)
		assert.Equal(t, "Student ID is required. Full Name is required.", errs.Message())
	})

	t.Run("WhitespaceOnlyIsMissing", func(t *testing.T) {
		_, errs := ParseCreateForm(StudentForm{StudentID: "   ", FullName: "\t"})
		assert.Len(t, errs, 2)
	})

	t.Run("OptionalFieldsBecomeNil", func(t *testing.T) {
		input, errs := ParseCreateForm(StudentForm{
			StudentID:   "S1",
			FullName:    "Ada",
			DateOfBirth: "  ",
			Address:     "",
			PhoneNumber: " ",
			Email:       "",
		})

		require.Empty(t, errs)
		assert.Nil(t, input.DateOfBirth)
		assert.Nil(t, input.Address)
		assert.Nil(t, input.PhoneNumber)
		assert.Nil(t, input.Email)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		input, errs := ParseCreateForm(StudentForm{StudentID: "S1", FullName: "Ada"})

		require.Empty(t, errs)
		assert.Equal(t, "Male", input.Gender)
		assert.Equal(t, models.StatusActive, input.Status)
	})

	t.Run("InvalidYear", func(t *testing.T) {
		_, errs := ParseCreateForm(StudentForm{
			StudentID:      "S1",
			FullName:       "Ada",
			EnrollmentYear: "twenty",
		})

		require.Len(t, errs, 1)
		assert.Equal(t, "enrollmentYear", errs[0].Field)
		assert.Equal(t, "Enrollment Year must be a whole number.", errs[0].Message)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		_, errs := ParseCreateForm(StudentForm{
			StudentID: "S1",
			FullName:  "Ada",
			Status:    "suspended",
		})

		require.Len(t, errs, 1)
		assert.Equal(t, "status", errs[0].Field)
	})
}

func TestParseEditForm(t *testing.T) {
	t.Run("ValidForm", func(t *testing.T) {
		update, errs := ParseEditForm(EditForm{
			FullName:       "Ada Lovelace",
			Gender:         "Female",
			Status:         "graduated",
			GraduationYear: "2023",
		})

		require.Empty(t, errs)
		assert.Equal(t, "Ada Lovelace", update.FullName)
		assert.Equal(t, models.StatusGraduated, update.Status)
		require.NotNil(t, update.GraduationYear)
		assert.Equal(t, 2023, *update.GraduationYear)
	})

	t.Run("FullNameRequired", func(t *testing.T) {
		_, errs := ParseEditForm(EditForm{})

		require.Len(t, errs, 1)
		assert.Equal(t, "fullName", errs[0].Field)
	})
}

func TestEditFormFrom(t *testing.T) {
	dob := "2001-05-14"
	email := "ada@example.com"
	enrollment := 2019

	form := editFormFrom(&models.Student{
		StudentID:      "S1024",
		FullName:       "Ada Lovelace",
		DateOfBirth:    &dob,
		Gender:         "Female",
		Email:          &email,
		EnrollmentYear: &enrollment,
		Status:         models.StatusActive,
	})

	assert.Equal(t, "Ada Lovelace", form.FullName)
	assert.Equal(t, "2001-05-14", form.DateOfBirth)
	assert.Equal(t, "ada@example.com", form.Email)
	assert.Equal(t, "2019", form.EnrollmentYear)
	assert.Equal(t, "active", form.Status)
	assert.Empty(t, form.PhoneNumber)
	assert.Empty(t, form.GraduationYear)
}

func TestEditState(t *testing.T) {
	s := newEditState()
	assert.Equal(t, ModeCreating, s.mode)
	assert.False(t, s.active())

	ok := s.begin("rec1", "S1", EditForm{FullName: "Ada"})
	require.True(t, ok)
	assert.True(t, s.active())
	assert.Equal(t, ModeEditing, s.mode)

	// A second edit cannot start while one is open
	assert.False(t, s.begin("rec2", "S2", EditForm{}))
	assert.Equal(t, "rec1", s.target)

	s.finish()
	assert.False(t, s.active())
	assert.Empty(t, s.target)
	assert.Empty(t, s.studentID)
}
