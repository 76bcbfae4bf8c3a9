package models

import "time"

// StudentStatus is the enrollment status of a student record
type StudentStatus string

const (
	StatusActive     StudentStatus = "active"
	StatusGraduated  StudentStatus = "graduated"
	StatusDroppedOut StudentStatus = "dropped_out"
	StatusInactive   StudentStatus = "inactive"
)

// ValidStatus reports whether s is one of the recognized enrollment statuses
func ValidStatus(s StudentStatus) bool {
	switch s {
	case StatusActive, StatusGraduated, StatusDroppedOut, StatusInactive:
		return true
	}
	return false
}

// Student defines a student record stored in the record store
type Student struct {
	ID             string        `json:"id" example:"8f1c2d3e"`                              // Store-assigned record identifier
	StudentID      string        `json:"studentId" example:"S1024"`                          // Business identifier, immutable after creation
	FullName       string        `json:"fullName" example:"Ada Lovelace"`                    // Student's full name
	DateOfBirth    *string       `json:"dateOfBirth,omitempty" example:"2001-05-14"`         // Date of birth (nullable)
	Gender         string        `json:"gender" example:"Female"`                            // Gender
	Address        *string       `json:"address,omitempty" example:"12 King St"`             // Postal address (nullable)
	PhoneNumber    *string       `json:"phoneNumber,omitempty" example:"+90 555 000 0000"`   // Phone number (nullable)
	Email          *string       `json:"email,omitempty" example:"ada@example.com"`          // Contact email (nullable)
	EnrollmentYear *int          `json:"enrollmentYear,omitempty" example:"2019"`            // Year of enrollment (nullable)
	Status         StudentStatus `json:"status" example:"active"`                            // Enrollment status
	GraduationYear *int          `json:"graduationYear,omitempty" example:"2023"`            // Year of graduation (nullable)
	CreatedBy      string        `json:"createdBy" example:"1"`                              // ID of the user who created the record
	CreatedAt      time.Time     `json:"createdAt" example:"2024-01-01T10:00:00Z"`           // Store-assigned creation timestamp
	UpdatedAt      *time.Time    `json:"updatedAt,omitempty" example:"2024-01-02T15:30:00Z"` // Store-assigned timestamp of the last update (nullable)
}

// StudentInput carries normalized field values for creating a student record
type StudentInput struct {
	StudentID      string
	FullName       string
	DateOfBirth    *string
	Gender         string
	Address        *string
	PhoneNumber    *string
	Email          *string
	EnrollmentYear *int
	Status         StudentStatus
	GraduationYear *int
}

// StudentUpdate carries normalized field values for updating a student record.
// The business student ID is deliberately absent: it never changes after creation.
type StudentUpdate struct {
	FullName       string
	DateOfBirth    *string
	Gender         string
	Address        *string
	PhoneNumber    *string
	Email          *string
	EnrollmentYear *int
	Status         StudentStatus
	GraduationYear *int
}
