package server

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"notekeep/internal/database/dto"
	"notekeep/internal/database/models"
	"notekeep/internal/database/repositories"

	"github.com/google/uuid"
)

// In-memory stand-ins for the SQL repositories. They mirror the repository
// contracts, including the owner-scoped not-found behaviour and the two
// sort orders, so handlers can be exercised without a database.

type stubDB struct{}

func (stubDB) Health() map[string]string { return map[string]string{"status": "up"} }
func (stubDB) DB() *sql.DB               { return nil }
func (stubDB) Migrate() error            { return nil }
func (stubDB) Close() error              { return nil }

type fakeUserRepo struct {
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	user.ID = uuid.New()
	user.CreatedOn = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeNoteRepo struct {
	notes map[uuid.UUID]models.Note
	seq   int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]models.Note)}
}

func (f *fakeNoteRepo) Create(_ context.Context, note *models.Note) error {
	if note.Tags == nil {
		note.Tags = []string{}
	}
	note.ID = uuid.New()
	f.seq++
	note.CreatedOn = time.Unix(int64(f.seq), 0)
	f.notes[note.ID] = *note
	return nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id uuid.UUID, userID uuid.UUID) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &note, nil
}

func (f *fakeNoteRepo) GetAll(_ context.Context, userID uuid.UUID) ([]models.Note, error) {
	notes := []models.Note{}
	for _, note := range f.notes {
		if note.UserID == userID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].CreatedOn.After(notes[j].CreatedOn)
	})
	return notes, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, id uuid.UUID, userID uuid.UUID, upd *dto.UpdateNote) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	if upd.Title != nil {
		note.Title = *upd.Title
	}
	if upd.Content != nil {
		note.Content = *upd.Content
	}
	if upd.Tags != nil {
		note.Tags = *upd.Tags
	}
	if upd.IsPinned != nil {
		note.IsPinned = *upd.IsPinned
	}
	f.notes[id] = note
	return &note, nil
}

func (f *fakeNoteRepo) SetPinned(_ context.Context, id uuid.UUID, userID uuid.UUID, pinned bool) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	note.IsPinned = pinned
	f.notes[id] = note
	return &note, nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeNoteRepo) Search(_ context.Context, userID uuid.UUID, query string) ([]models.Note, error) {
	q := strings.ToLower(query)
	notes := []models.Note{}
	for _, note := range f.notes {
		if note.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(note.Title), q) || strings.Contains(strings.ToLower(note.Content), q) {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Title < notes[j].Title })
	return notes, nil
}
