package dto

// StudentFormRequest carries raw form values for creating a student record.
// All fields arrive as strings; normalization and validation happen in the
// workflow layer so that per-field messages can be reported together.
type StudentFormRequest struct {
	StudentID      string `json:"studentId"`
	FullName       string `json:"fullName"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phoneNumber"`
	Email          string `json:"email"`
	EnrollmentYear string `json:"enrollmentYear"`
	Status         string `json:"status"`
	GraduationYear string `json:"graduationYear"`
}

// EditStudentFormRequest carries raw form values for updating the record
// currently being edited. The student ID is shown but never submitted.
type EditStudentFormRequest struct {
	FullName       string `json:"fullName"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phoneNumber"`
	Email          string `json:"email"`
	EnrollmentYear string `json:"enrollmentYear"`
	Status         string `json:"status"`
	GraduationYear string `json:"graduationYear"`
}
