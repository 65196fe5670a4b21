package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notekeep/internal/database/dto"
	"notekeep/internal/database/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NoteRepository scopes every read and mutation to the owning user: the
// (id, user_id) pair is matched in a single statement, so a note that exists
// but belongs to someone else is indistinguishable from one that does not
// exist at all.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.Note, error)
	GetAll(ctx context.Context, userID uuid.UUID) ([]models.Note, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, upd *dto.UpdateNote) (*models.Note, error)
	SetPinned(ctx context.Context, id uuid.UUID, userID uuid.UUID, pinned bool) (*models.Note, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, query string) ([]models.Note, error)
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.Tags == nil {
		note.Tags = []string{}
	}
	query := `
		INSERT INTO notes (title, content, tags, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_pinned, created_on`
	err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, pq.Array(note.Tags), note.UserID).
		Scan(&note.ID, &note.IsPinned, &note.CreatedOn)
	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.Note, error) {
	note := models.Note{}
	query := `
		SELECT id, title, content, tags, is_pinned, user_id, created_on
		FROM notes WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&note.ID, &note.Title, &note.Content, pq.Array(&note.Tags), &note.IsPinned, &note.UserID, &note.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return &note, nil
}

// GetAll lists the user's notes, pinned ones first, newest first within
// each group.
func (r *noteRepository) GetAll(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	query := `
		SELECT id, title, content, tags, is_pinned, user_id, created_on
		FROM notes WHERE user_id = $1
		ORDER BY is_pinned DESC, created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

// Update applies a partial update: nil fields keep their stored value, set
// fields overwrite it. A set IsPinned of false is still applied.
func (r *noteRepository) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, upd *dto.UpdateNote) (*models.Note, error) {
	var tags interface{}
	if upd.Tags != nil {
		tags = pq.Array(*upd.Tags)
	}
	note := models.Note{}
	query := `
		UPDATE notes
		SET title     = COALESCE($1, title),
		    content   = COALESCE($2, content),
		    tags      = COALESCE($3::text[], tags),
		    is_pinned = COALESCE($4, is_pinned)
		WHERE id = $5 AND user_id = $6
		RETURNING id, title, content, tags, is_pinned, user_id, created_on`
	err := r.db.QueryRowContext(ctx, query, upd.Title, upd.Content, tags, upd.IsPinned, id, userID).
		Scan(&note.ID, &note.Title, &note.Content, pq.Array(&note.Tags), &note.IsPinned, &note.UserID, &note.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) SetPinned(ctx context.Context, id uuid.UUID, userID uuid.UUID, pinned bool) (*models.Note, error) {
	note := models.Note{}
	query := `
		UPDATE notes SET is_pinned = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, title, content, tags, is_pinned, user_id, created_on`
	err := r.db.QueryRowContext(ctx, query, pinned, id, userID).
		Scan(&note.ID, &note.Title, &note.Content, pq.Array(&note.Tags), &note.IsPinned, &note.UserID, &note.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating note pin: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			pq.Array(&note.Tags),
			&note.IsPinned,
			&note.UserID,
			&note.CreatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}
