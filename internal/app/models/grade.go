package models

// Grade defines a per-subject grade attached to a student record
type Grade struct {
	ID        string `json:"id" example:"7b3a9c1d"`       // Store-assigned record identifier
	StudentID string `json:"studentId" example:"8f1c2d3e"` // Record identifier of the owning student
	YearLevel int    `json:"yearLevel" example:"2"`       // Year level the grade belongs to
	Subject   string `json:"subject" example:"Calculus"`  // Subject name
	Grade     string `json:"grade" example:"AA"`          // Grade value as recorded
}

// GradeInput carries field values for creating or updating a grade
type GradeInput struct {
	YearLevel int
	Subject   string
	Grade     string
}
