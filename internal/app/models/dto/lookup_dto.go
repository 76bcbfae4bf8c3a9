package dto

// GraduateRecordView is the restricted view of a graduated student exposed
// to the public lookup. Contact details and audit fields are never included.
type GraduateRecordView struct {
	FullName       string      `json:"fullName" example:"Ada Lovelace"`
	StudentID      string      `json:"studentId" example:"S1024"`
	Status         string      `json:"status" example:"graduated"`
	EnrollmentYear *int        `json:"enrollmentYear,omitempty" example:"2019"`
	GraduationYear *int        `json:"graduationYear,omitempty" example:"2023"`
	Grades         []GradeView `json:"grades,omitempty"`
}

// LookupResponse wraps a public lookup result together with its status message
type LookupResponse struct {
	Feedback FeedbackView        `json:"feedback"`
	Record   *GraduateRecordView `json:"record,omitempty"`
}
