package server

import (
	"errors"

	"notekeep/internal/auth"
	"notekeep/internal/database/dto"
	"notekeep/internal/database/models"
	"notekeep/internal/database/repositories"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RegisterFiberRoutes wires all endpoints. The jwt middleware is installed
// with a single Use between the public and protected groups, so every route
// registered after it is gated; no protected handler can be reached without
// a verified token.
func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "hello"})
	})
	s.App.Post("/create-account", s.createAccount)
	s.App.Post("/login", s.login)
	s.App.Get("/health", s.healthHandler)

	s.App.Use(jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(s.cfg.TokenSecret)},
		ErrorHandler: jwtError,
	}))

	s.App.Post("/add-note", s.addNote)
	s.App.Put("/edit-note/:noteId", s.editNote)
	s.App.Get("/get-all-notes", s.getAllNotes)
	s.App.Delete("/delete-note/:noteId", s.deleteNote)
	s.App.Put("/update-note-pinned/:noteId", s.updateNotePinned)
	s.App.Get("/get-user", s.getUser)
	s.App.Get("/search-notes", s.searchNotes)
}

// jwtError distinguishes "no credential at all" (401) from "credential
// present but unusable" (403).
func jwtError(c *fiber.Ctx, err error) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Access token is required",
		})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   true,
		"message": "Invalid or expired token",
	})
}

// currentUserID extracts the authenticated user id from the verified token
// the jwt middleware stored on the request. The subject claim is the only
// identity field consulted.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrForbidden
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fiber.ErrForbidden
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return uuid.Nil, fiber.ErrForbidden
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fiber.ErrForbidden
	}
	return userID, nil
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": true, "message": message})
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}

func (s *FiberServer) createAccount(c *fiber.Ctx) error {
	req := dto.RegisterRequest{}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.FullName == "" {
		return fail(c, fiber.StatusBadRequest, "Full Name is required")
	}
	if req.Email == "" {
		return fail(c, fiber.StatusBadRequest, "Email is required")
	}
	if req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Password is required")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashed,
	}
	if err := s.users.Create(c.Context(), &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return fail(c, fiber.StatusBadRequest, "User already exists")
		}
		return err
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"error":       false,
		"user":        user,
		"accessToken": accessToken,
		"message":     "Registration Successful",
	})
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	credentials := dto.LoginCredentials{}
	if err := c.BodyParser(&credentials); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if credentials.Email == "" {
		return fail(c, fiber.StatusBadRequest, "Email is required")
	}
	if credentials.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Password is required")
	}

	user, err := s.users.GetByEmail(c.Context(), credentials.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fail(c, fiber.StatusBadRequest, "User not found")
		}
		return err
	}
	if !auth.CheckPasswordHash(credentials.Password, user.Password) {
		return fail(c, fiber.StatusBadRequest, "Invalid credentials")
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"error":       false,
		"message":     "Login Successful",
		"accessToken": accessToken,
	})
}

func (s *FiberServer) addNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	req := dto.CreateNote{}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" {
		return fail(c, fiber.StatusBadRequest, "Title is required")
	}
	if req.Content == "" {
		return fail(c, fiber.StatusBadRequest, "Content is required")
	}

	// Ownership comes from the token, never from the payload.
	note := models.Note{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		UserID:  userID,
	}
	if err := s.notes.Create(c.Context(), &note); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Note added successfully",
		"note":    note,
	})
}

func (s *FiberServer) editNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid note id")
	}
	upd := dto.UpdateNote{}
	if err := c.BodyParser(&upd); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if upd.Empty() {
		return fail(c, fiber.StatusBadRequest, "No valid changes provided")
	}

	note, err := s.notes.Update(c.Context(), noteID, userID, &upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Note not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Note updated successfully",
		"note":    note,
	})
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	notes, err := s.notes.GetAll(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"notes":   notes,
		"message": "All notes retrieved successfully",
	})
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid note id")
	}
	if err := s.notes.Delete(c.Context(), noteID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Note not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Note deleted successfully",
	})
}

func (s *FiberServer) updateNotePinned(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid note id")
	}
	req := dto.UpdatePinned{}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// nil means the field was absent; false is a legitimate value.
	if req.IsPinned == nil {
		return fail(c, fiber.StatusBadRequest, "isPinned is required")
	}

	note, err := s.notes.SetPinned(c.Context(), noteID, userID, *req.IsPinned)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Note not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"note":    note,
		"message": "Note updated successfully",
	})
}

func (s *FiberServer) getUser(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fail(c, fiber.StatusUnauthorized, "User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"user":    user,
		"message": "User details retrieved successfully",
	})
}

func (s *FiberServer) searchNotes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	search := c.Query("search")
	if search == "" {
		return fail(c, fiber.StatusBadRequest, "Search query is required")
	}
	notes, err := s.notes.Search(c.Context(), userID, search)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"error":   false,
		"notes":   notes,
		"message": "Notes matching the search query retrieved successfully",
	})
}
