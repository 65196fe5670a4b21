package repositories

import (
	"context"
	"fmt"
	"notekeep/internal/database/models"
	"strings"

	"github.com/google/uuid"
)

// Search returns the user's notes whose title or content contains the query
// substring, case-insensitively, sorted by title ascending. The listing
// endpoint sorts pinned-first instead; the two orderings are intentionally
// different.
func (r *noteRepository) Search(ctx context.Context, userID uuid.UUID, query string) ([]models.Note, error) {
	pattern := "%" + escapeLike(query) + "%"
	stmt := `
		SELECT id, title, content, tags, is_pinned, user_id, created_on
		FROM notes
		WHERE user_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
		ORDER BY title ASC`
	rows, err := r.db.QueryContext(ctx, stmt, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("error searching notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

// escapeLike neutralizes LIKE metacharacters so the query is matched as a
// plain substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
