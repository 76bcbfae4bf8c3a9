package workflow

// FeedbackLevel classifies a console status message
type FeedbackLevel string

const (
	LevelInfo    FeedbackLevel = "info"
	LevelSuccess FeedbackLevel = "success"
	LevelWarning FeedbackLevel = "warning"
	LevelError   FeedbackLevel = "error"
)

// Feedback is a user-facing status message for one console area. Each area
// (create form, record list, edit form) holds at most one at a time.
type Feedback struct {
	Level   FeedbackLevel `json:"level"`
	Message string        `json:"message"`
}

// NewFeedback creates a feedback message
func NewFeedback(level FeedbackLevel, message string) *Feedback {
	return &Feedback{Level: level, Message: message}
}
