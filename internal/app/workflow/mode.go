package workflow

// Mode is the console's view mode. The two modes are mutually exclusive:
// while a record is being edited the create form and record list are hidden,
// and vice versa.
type Mode string

const (
	// ModeCreating shows the create form and the record list
	ModeCreating Mode = "creating"
	// ModeEditing shows only the edit form for one record
	ModeEditing Mode = "editing"
)

// editState tracks which record, if any, is open for editing
type editState struct {
	mode      Mode
	target    string // store-assigned ID of the record being edited
	studentID string // business student ID, shown but not editable
	form      EditForm
}

func newEditState() editState {
	return editState{mode: ModeCreating}
}

// begin switches to editing mode for one record. Only valid from creating
// mode; a second edit cannot start until the first finishes.
func (s *editState) begin(target, studentID string, form EditForm) bool {
	if s.mode == ModeEditing {
		return false
	}
	s.mode = ModeEditing
	s.target = target
	s.studentID = studentID
	s.form = form
	return true
}

// finish returns to creating mode and clears the editing target
func (s *editState) finish() {
	s.mode = ModeCreating
	s.target = ""
	s.studentID = ""
	s.form = EditForm{}
}

// active reports whether a record is currently open for editing
func (s *editState) active() bool {
	return s.mode == ModeEditing
}
