package dto

// GradeRequest represents a grade to attach to a student record
type GradeRequest struct {
	YearLevel int    `json:"yearLevel" binding:"required,min=1"`
	Subject   string `json:"subject" binding:"required"`
	Grade     string `json:"grade" binding:"required"`
}

// GradeView represents a grade in API responses
type GradeView struct {
	ID        string `json:"id,omitempty"`
	YearLevel int    `json:"yearLevel" example:"2"`
	Subject   string `json:"subject" example:"Calculus"`
	Grade     string `json:"grade" example:"AA"`
}
