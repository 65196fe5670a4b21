// Package dto defines request payloads. Update payloads use pointer fields
// so handlers can tell "field absent" apart from "field present with a zero
// value" — in particular isPinned=false must still be applied.
package dto

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateNote struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type UpdateNote struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

// Empty reports whether the payload carries no changes at all.
func (u UpdateNote) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil && u.IsPinned == nil
}

type UpdatePinned struct {
	IsPinned *bool `json:"isPinned"`
}
