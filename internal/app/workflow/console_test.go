package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

// fakeStore is an in-memory Store with overridable behavior per method
type fakeStore struct {
	createFn func(ctx context.Context, input models.StudentInput, createdBy string) (string, error)
	listFn   func(ctx context.Context) ([]models.Student, error)
	getFn    func(ctx context.Context, id string) (*models.Student, error)
	updateFn func(ctx context.Context, id string, changes models.StudentUpdate) error
	deleteFn func(ctx context.Context, id string) error
	searchFn func(ctx context.Context, term, by string) ([]models.Student, error)
}

func (f *fakeStore) Create(ctx context.Context, input models.StudentInput, createdBy string) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, input, createdBy)
	}
	return "rec1", nil
}

func (f *fakeStore) ListByCreationDesc(ctx context.Context) ([]models.Student, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStore) Update(ctx context.Context, id string, changes models.StudentUpdate) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, changes)
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeStore) Search(ctx context.Context, term, by string) ([]models.Student, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, term, by)
	}
	return nil, nil
}

func newTestConsole(store Store) *Console {
	return NewConsole(store, "1", zerolog.Nop())
}

func sampleStudent(id, studentID, name string) models.Student {
	return models.Student{
		ID:        id,
		StudentID: studentID,
		FullName:  name,
		Gender:    "Male",
		Status:    models.StatusActive,
	}
}

func TestConsoleCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidationFailureRetainsForm", func(t *testing.T) {
		console := newTestConsole(&fakeStore{})

		form := StudentForm{FullName: "Ada"}
		snap := console.Create(ctx, form)

		require.NotNil(t, snap.CreateFeedback)
		assert.Equal(t, LevelError, snap.CreateFeedback.Level)
		assert.Equal(t, "Student ID is required.", snap.CreateFeedback.Message)
		assert.Equal(t, form, snap.CreateForm, "submitted form should be retained")
	})

	t.Run("SuccessClearsFormAndReloads", func(t *testing.T) {
		created := false
		store := &fakeStore{
			createFn: func(ctx context.Context, input models.StudentInput, createdBy string) (string, error) {
				created = true
				assert.Equal(t, "1", createdBy)
				return "rec1", nil
			},
			listFn: func(ctx context.Context) ([]models.Student, error) {
				return []models.Student{sampleStudent("rec1", "S1024", "Ada Lovelace")}, nil
			},
		}
		console := newTestConsole(store)

		snap := console.Create(ctx, StudentForm{StudentID: "S1024", FullName: "Ada Lovelace"})

		assert.True(t, created)
		require.NotNil(t, snap.CreateFeedback)
		assert.Equal(t, LevelSuccess, snap.CreateFeedback.Level)
		assert.Equal(t, `Student "Ada Lovelace" (ID: S1024) added successfully.`, snap.CreateFeedback.Message)
		assert.Equal(t, StudentForm{}, snap.CreateForm, "form should be cleared")
		require.Len(t, snap.Rows, 1)
		assert.Equal(t, "rec1", snap.Rows[0].ID)
	})

	t.Run("StoreFailureKeepsVerbatimMessage", func(t *testing.T) {
		store := &fakeStore{
			createFn: func(ctx context.Context, input models.StudentInput, createdBy string) (string, error) {
				return "", errors.New("connection reset by peer")
			},
		}
		console := newTestConsole(store)

		form := StudentForm{StudentID: "S1", FullName: "Ada"}
		snap := console.Create(ctx, form)

		require.NotNil(t, snap.CreateFeedback)
		assert.Equal(t, LevelError, snap.CreateFeedback.Level)
		assert.Equal(t, "Error adding student: connection reset by peer", snap.CreateFeedback.Message)
		assert.Equal(t, form, snap.CreateForm)
	})
}

func TestConsoleRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyList", func(t *testing.T) {
		console := newTestConsole(&fakeStore{})

		snap := console.Refresh(ctx)

		assert.Empty(t, snap.Rows)
		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelInfo, snap.ListFeedback.Level)
		assert.Equal(t, "No student records found in the database.", snap.ListFeedback.Message)
	})

	t.Run("FailureKeepsPreviousRows", func(t *testing.T) {
		failing := false
		store := &fakeStore{
			listFn: func(ctx context.Context) ([]models.Student, error) {
				if failing {
					return nil, errors.New("store unreachable")
				}
				return []models.Student{sampleStudent("rec1", "S1", "Ada")}, nil
			},
		}
		console := newTestConsole(store)

		console.Refresh(ctx)
		failing = true
		snap := console.Refresh(ctx)

		require.Len(t, snap.Rows, 1, "previous rows should survive a failed reload")
		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelError, snap.ListFeedback.Level)
		assert.Equal(t, "Error loading student records: store unreachable", snap.ListFeedback.Message)
	})
}

func TestConsoleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyTermReloadsFullList", func(t *testing.T) {
		store := &fakeStore{
			listFn: func(ctx context.Context) ([]models.Student, error) {
				return []models.Student{sampleStudent("rec1", "S1", "Ada")}, nil
			},
			searchFn: func(ctx context.Context, term, by string) ([]models.Student, error) {
				t.Fatal("search should not be called for an empty term")
				return nil, nil
			},
		}
		console := newTestConsole(store)

		snap := console.Search(ctx, "", "name")
		assert.Len(t, snap.Rows, 1)
	})

	t.Run("NoMatches", func(t *testing.T) {
		console := newTestConsole(&fakeStore{})

		snap := console.Search(ctx, "nobody", "name")

		assert.Empty(t, snap.Rows)
		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelWarning, snap.ListFeedback.Level)
		assert.Equal(t, `No students found matching "nobody".`, snap.ListFeedback.Message)
	})

	t.Run("Matches", func(t *testing.T) {
		store := &fakeStore{
			searchFn: func(ctx context.Context, term, by string) ([]models.Student, error) {
				assert.Equal(t, "ada", term)
				assert.Equal(t, "name", by)
				return []models.Student{sampleStudent("rec1", "S1", "Ada")}, nil
			},
		}
		console := newTestConsole(store)

		snap := console.Search(ctx, "ada", "name")

		require.Len(t, snap.Rows, 1)
		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelInfo, snap.ListFeedback.Level)
	})
}

func TestConsoleEditLifecycle(t *testing.T) {
	ctx := context.Background()

	student := sampleStudent("rec1", "S1024", "Ada Lovelace")
	store := &fakeStore{
		getFn: func(ctx context.Context, id string) (*models.Student, error) {
			if id == "rec1" {
				s := student
				return &s, nil
			}
			return nil, apperrors.ErrStudentNotFound
		},
	}

	t.Run("BeginLoadsRecordIntoBuffer", func(t *testing.T) {
		console := newTestConsole(store)

		snap := console.BeginEdit(ctx, "rec1")

		assert.Equal(t, ModeEditing, snap.Mode)
		assert.Equal(t, "rec1", snap.EditingTarget)
		assert.Equal(t, "S1024", snap.EditStudentID)
		assert.Equal(t, "Ada Lovelace", snap.EditForm.FullName)
		assert.Nil(t, snap.EditFeedback)
	})

	t.Run("BeginMissingRecord", func(t *testing.T) {
		console := newTestConsole(store)

		snap := console.BeginEdit(ctx, "gone")

		assert.Equal(t, ModeCreating, snap.Mode)
		require.NotNil(t, snap.EditFeedback)
		assert.Equal(t, "Student record not found.", snap.EditFeedback.Message)
	})

	t.Run("SecondEditRejected", func(t *testing.T) {
		console := newTestConsole(store)

		console.BeginEdit(ctx, "rec1")
		snap := console.BeginEdit(ctx, "rec1")

		assert.Equal(t, ModeEditing, snap.Mode)
		require.NotNil(t, snap.EditFeedback)
		assert.Equal(t, LevelWarning, snap.EditFeedback.Level)
	})

	t.Run("SubmitWithoutActiveEdit", func(t *testing.T) {
		console := newTestConsole(store)

		snap := console.SubmitEdit(ctx, EditForm{FullName: "Ada"})

		require.NotNil(t, snap.EditFeedback)
		assert.Equal(t, "No student record is currently being edited.", snap.EditFeedback.Message)
	})

	t.Run("SubmitValidationFailureStaysEditing", func(t *testing.T) {
		console := newTestConsole(store)

		console.BeginEdit(ctx, "rec1")
		snap := console.SubmitEdit(ctx, EditForm{})

		assert.Equal(t, ModeEditing, snap.Mode)
		require.NotNil(t, snap.EditFeedback)
		assert.Equal(t, "Full Name is required.", snap.EditFeedback.Message)
	})

	t.Run("SubmitSuccessLeavesEditingAndReloads", func(t *testing.T) {
		var updated models.StudentUpdate
		localStore := &fakeStore{
			getFn: store.getFn,
			updateFn: func(ctx context.Context, id string, changes models.StudentUpdate) error {
				assert.Equal(t, "rec1", id)
				updated = changes
				return nil
			},
			listFn: func(ctx context.Context) ([]models.Student, error) {
				return []models.Student{student}, nil
			},
		}
		console := newTestConsole(localStore)

		console.BeginEdit(ctx, "rec1")
		snap := console.SubmitEdit(ctx, EditForm{FullName: "Ada King", Gender: "Female", Status: "graduated"})

		assert.Equal(t, "Ada King", updated.FullName)
		assert.Equal(t, models.StatusGraduated, updated.Status)
		assert.Equal(t, ModeCreating, snap.Mode)
		assert.Empty(t, snap.EditingTarget)
		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelSuccess, snap.ListFeedback.Level)
		assert.Equal(t, "Student record updated successfully!", snap.ListFeedback.Message)
	})

	t.Run("SubmitStoreFailureStaysEditing", func(t *testing.T) {
		localStore := &fakeStore{
			getFn: store.getFn,
			updateFn: func(ctx context.Context, id string, changes models.StudentUpdate) error {
				return errors.New("write conflict")
			},
		}
		console := newTestConsole(localStore)

		console.BeginEdit(ctx, "rec1")
		snap := console.SubmitEdit(ctx, EditForm{FullName: "Ada King"})

		assert.Equal(t, ModeEditing, snap.Mode)
		require.NotNil(t, snap.EditFeedback)
		assert.Equal(t, "Error updating student record: write conflict", snap.EditFeedback.Message)
	})

	t.Run("CancelReturnsToCreating", func(t *testing.T) {
		console := newTestConsole(store)

		console.BeginEdit(ctx, "rec1")
		snap := console.CancelEdit()

		assert.Equal(t, ModeCreating, snap.Mode)
		assert.Empty(t, snap.EditingTarget)
		assert.Nil(t, snap.EditFeedback)
	})
}

func TestConsoleDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("UnconfirmedTouchesNothing", func(t *testing.T) {
		store := &fakeStore{
			deleteFn: func(ctx context.Context, id string) error {
				t.Fatal("delete should not reach the store without confirmation")
				return nil
			},
		}
		console := newTestConsole(store)

		snap := console.Delete(ctx, "rec1", false)

		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelWarning, snap.ListFeedback.Level)
		assert.Equal(t, "Deletion was not confirmed; no records were removed.", snap.ListFeedback.Message)
	})

	t.Run("NotFound", func(t *testing.T) {
		store := &fakeStore{
			deleteFn: func(ctx context.Context, id string) error {
				return apperrors.ErrStudentNotFound
			},
		}
		console := newTestConsole(store)

		snap := console.Delete(ctx, "gone", true)

		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelError, snap.ListFeedback.Level)
		assert.Equal(t, "Student record not found.", snap.ListFeedback.Message)
	})

	t.Run("ConfirmedSuccessReloads", func(t *testing.T) {
		deleted := ""
		store := &fakeStore{
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		console := newTestConsole(store)

		snap := console.Delete(ctx, "rec1", true)

		assert.Equal(t, "rec1", deleted)
		assert.Empty(t, snap.Rows)
		require.NotNil(t, snap.ListFeedback)
		assert.Equal(t, LevelSuccess, snap.ListFeedback.Level)
		assert.Equal(t, "Student record deleted successfully!", snap.ListFeedback.Message)
	})
}
