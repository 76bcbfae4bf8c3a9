package dto

// FeedbackView is a user-facing status message for one console area
type FeedbackView struct {
	Level   string `json:"level" example:"success"`
	Message string `json:"message" example:"Student \"Ada Lovelace\" (ID: S1024) added successfully."`
}

// StudentRowView is one row of the console's record list. The table shows a
// summary; full details load when a record is opened for editing.
type StudentRowView struct {
	ID             string `json:"id"`
	StudentID      string `json:"studentId"`
	FullName       string `json:"fullName"`
	Email          string `json:"email,omitempty"`
	Status         string `json:"status"`
	EnrollmentYear *int   `json:"enrollmentYear,omitempty"`
}

// EditFormView mirrors the contents of the edit form while a record is open
// for editing
type EditFormView struct {
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

// ConsoleView is the full per-session view state of the record console
type ConsoleView struct {
	Mode           string              `json:"mode" example:"creating"`
	EditingTarget  string              `json:"editingTarget,omitempty"`
	EditForm       *EditFormView       `json:"editForm,omitempty"`
	CreateForm     *StudentFormRequest `json:"createForm,omitempty"`
	Students       []StudentRowView    `json:"students"`
	CreateFeedback *FeedbackView       `json:"createFeedback,omitempty"`
	ListFeedback   *FeedbackView       `json:"listFeedback,omitempty"`
	EditFeedback   *FeedbackView       `json:"editFeedback,omitempty"`
}
