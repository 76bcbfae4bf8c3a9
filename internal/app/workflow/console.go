package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/odemir/studentbook/internal/app/models"
)

// Store is the record store surface the console needs. The production
// implementation is repositories.StudentRepository.
type Store interface {
	Create(ctx context.Context, input models.StudentInput, createdBy string) (string, error)
	ListByCreationDesc(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	Update(ctx context.Context, id string, changes models.StudentUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term, by string) ([]models.Student, error)
}

// Console holds the per-session view state of the record console: the
// current mode, the loaded record list, the edit buffer and the feedback
// message of each area. One console exists per signed-in session and is
// discarded on sign-out.
type Console struct {
	mu    sync.Mutex
	store Store
	log   zerolog.Logger

	// actor identifies the signed-in user, recorded on created records
	actor string

	rows []models.Student
	edit editState

	createForm StudentForm

	createFeedback *Feedback
	listFeedback   *Feedback
	editFeedback   *Feedback
}

// Snapshot is a copy of the console state safe to hand to the response layer
type Snapshot struct {
	Mode           Mode
	EditingTarget  string
	EditStudentID  string
	EditForm       EditForm
	CreateForm     StudentForm
	Rows           []models.Student
	CreateFeedback *Feedback
	ListFeedback   *Feedback
	EditFeedback   *Feedback
}

// NewConsole creates a console for one signed-in session
func NewConsole(store Store, actor string, log zerolog.Logger) *Console {
	return &Console{
		store: store,
		log:   log,
		actor: actor,
		edit:  newEditState(),
	}
}

// Snapshot returns a copy of the current console state
func (c *Console) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Console) snapshotLocked() Snapshot {
	rows := make([]models.Student, len(c.rows))
	copy(rows, c.rows)
	return Snapshot{
		Mode:           c.edit.mode,
		EditingTarget:  c.edit.target,
		EditStudentID:  c.edit.studentID,
		EditForm:       c.edit.form,
		CreateForm:     c.createForm,
		Rows:           rows,
		CreateFeedback: c.createFeedback,
		ListFeedback:   c.listFeedback,
		EditFeedback:   c.editFeedback,
	}
}

// Create validates the form and, if clean, writes a new student record. The
// record list is reloaded after a successful write so the new record shows
// up in its ordered position. On failure the submitted form is retained.
func (c *Console) Create(ctx context.Context, form StudentForm) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	input, errs := ParseCreateForm(form)
	if len(errs) > 0 {
		c.createForm = form
		c.createFeedback = NewFeedback(LevelError, errs.Message())
		return c.snapshotLocked()
	}

	id, err := c.store.Create(ctx, input, c.actor)
	if err != nil {
		c.log.Error().Err(err).Str("studentId", input.StudentID).Msg("Failed to create student record")
		c.createForm = form
		c.createFeedback = NewFeedback(LevelError, "Error adding student: "+err.Error())
		return c.snapshotLocked()
	}

	c.log.Info().Str("record", id).Str("studentId", input.StudentID).Msg("Student record created")
	c.createForm = StudentForm{}
	c.createFeedback = NewFeedback(LevelSuccess,
		fmt.Sprintf("Student %q (ID: %s) added successfully.", input.FullName, input.StudentID))

	c.refreshLocked(ctx)
	return c.snapshotLocked()
}

// Refresh reloads the record list from the store, newest first
func (c *Console) Refresh(ctx context.Context) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshLocked(ctx)
	return c.snapshotLocked()
}

// refreshLocked reloads the rows. On failure the previously loaded rows are
// kept so the console never renders stale data as if it were current.
func (c *Console) refreshLocked(ctx context.Context) bool {
	rows, err := c.store.ListByCreationDesc(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to load student records")
		c.listFeedback = NewFeedback(LevelError, "Error loading student records: "+err.Error())
		return false
	}

	c.rows = rows
	if len(rows) == 0 {
		c.listFeedback = NewFeedback(LevelInfo, "No student records found in the database.")
	} else {
		c.listFeedback = nil
	}
	return true
}

// Search replaces the record list with records matching the term. by selects
// the field ("name" or "id"); an empty term reloads the full list.
func (c *Console) Search(ctx context.Context, term, by string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if term == "" {
		c.refreshLocked(ctx)
		return c.snapshotLocked()
	}

	rows, err := c.store.Search(ctx, term, by)
	if err != nil {
		c.log.Error().Err(err).Str("term", term).Msg("Student search failed")
		c.listFeedback = NewFeedback(LevelError, "Error searching student records: "+err.Error())
		return c.snapshotLocked()
	}

	c.rows = rows
	if len(rows) == 0 {
		c.listFeedback = NewFeedback(LevelWarning, fmt.Sprintf("No students found matching %q.", term))
	} else {
		c.listFeedback = NewFeedback(LevelInfo, fmt.Sprintf("Displaying students matching %q.", term))
	}
	return c.snapshotLocked()
}

// BeginEdit loads a record into the edit buffer and switches the console to
// editing mode. The create form and record list stay untouched underneath.
func (c *Console) BeginEdit(ctx context.Context, id string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.edit.active() {
		c.editFeedback = NewFeedback(LevelWarning, "Another record is already being edited.")
		return c.snapshotLocked()
	}

	student, err := c.store.GetByID(ctx, id)
	if err != nil {
		if student == nil && isStudentNotFound(err) {
			c.editFeedback = NewFeedback(LevelError, "Student record not found.")
		} else {
			c.log.Error().Err(err).Str("record", id).Msg("Failed to load student record for editing")
			c.editFeedback = NewFeedback(LevelError, "Error fetching student details: "+err.Error())
		}
		return c.snapshotLocked()
	}

	c.edit.begin(id, student.StudentID, editFormFrom(student))
	c.editFeedback = nil
	return c.snapshotLocked()
}

// SubmitEdit validates the edit form and writes the changes to the record
// being edited. On success the console leaves editing mode and reloads the
// list; on failure it stays in editing mode with the submitted values.
func (c *Console) SubmitEdit(ctx context.Context, form EditForm) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.edit.active() {
		c.editFeedback = NewFeedback(LevelError, "No student record is currently being edited.")
		return c.snapshotLocked()
	}

	update, errs := ParseEditForm(form)
	if len(errs) > 0 {
		c.edit.form = form
		c.editFeedback = NewFeedback(LevelError, errs.Message())
		return c.snapshotLocked()
	}

	target := c.edit.target
	if err := c.store.Update(ctx, target, update); err != nil {
		c.log.Error().Err(err).Str("record", target).Msg("Failed to update student record")
		c.edit.form = form
		c.editFeedback = NewFeedback(LevelError, "Error updating student record: "+err.Error())
		return c.snapshotLocked()
	}

	c.log.Info().Str("record", target).Msg("Student record updated")
	c.edit.finish()
	c.editFeedback = nil

	if c.refreshLocked(ctx) {
		c.listFeedback = NewFeedback(LevelSuccess, "Student record updated successfully!")
	}
	return c.snapshotLocked()
}

// CancelEdit abandons the edit buffer and returns to creating mode without
// touching the store
func (c *Console) CancelEdit() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.edit.finish()
	c.editFeedback = nil
	return c.snapshotLocked()
}

// Delete removes a record after explicit confirmation. Without confirmation
// nothing reaches the store. After a successful delete the list is reloaded
// so the console never shows the removed record.
func (c *Console) Delete(ctx context.Context, id string, confirmed bool) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !confirmed {
		c.listFeedback = NewFeedback(LevelWarning, "Deletion was not confirmed; no records were removed.")
		return c.snapshotLocked()
	}

	if err := c.store.Delete(ctx, id); err != nil {
		if isStudentNotFound(err) {
			c.listFeedback = NewFeedback(LevelError, "Student record not found.")
		} else {
			c.log.Error().Err(err).Str("record", id).Msg("Failed to delete student record")
			c.listFeedback = NewFeedback(LevelError, "Error deleting student record: "+err.Error())
		}
		return c.snapshotLocked()
	}

	c.log.Info().Str("record", id).Msg("Student record deleted")
	if c.refreshLocked(ctx) {
		c.listFeedback = NewFeedback(LevelSuccess, "Student record deleted successfully!")
	}
	return c.snapshotLocked()
}
