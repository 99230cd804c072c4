package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/suroriente/helpdesk-service/internal/api/dto"
	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/repository"
	"github.com/suroriente/helpdesk-service/internal/service"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// UsersHandler manages authentication and the user directory.
type UsersHandler struct {
	service      *service.UserService
	cookieSecure bool
	bcryptCost   int
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, cookieSecure bool, bcryptCost int) *UsersHandler {
	return &UsersHandler{service: userService, cookieSecure: cookieSecure, bcryptCost: bcryptCost}
}

// Login POST /auth/login. The token travels both in the body and in an
// HttpOnly cookie so either client style works.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	session, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return respond(c, fiber.StatusOK, "login successful", dto.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      userResponse(session.User),
	})
}

// Logout POST /auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return respond(c, fiber.StatusOK, "logout successful", nil)
}

// Me GET /auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.service.GetUser(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", userResponse(user))
}

// Register POST /auth/register and POST /users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.Register(c.UserContext(), service.RegisterInput{
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		Role:           domain.Role(req.Role),
		PositionID:     req.PositionID,
		MunicipalityID: req.MunicipalityID,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "user created", userResponse(user))
}

// List GET /users (ADMIN).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return respond(c, fiber.StatusOK, "", items)
}

// Get GET /users/:id (ADMIN).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", userResponse(user))
}

// Update PUT /users/:id. Any authenticated user may update their own
// profile; everything else is admin territory and enforced in the
// service.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := repository.UserUpdate{
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          req.Email,
		Phone:          req.Phone,
		PositionID:     req.PositionID,
		MunicipalityID: req.MunicipalityID,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, h.bcryptCost)
		if err != nil {
			return apperrors.MapError(err)
		}
		update.PasswordHash = &hash
	}

	user, err := h.service.UpdateUser(c.UserContext(), *identity, c.Params("id"), update)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user updated", userResponse(user))
}

// SetActive PATCH /users/:id/active (ADMIN).
func (h *UsersHandler) SetActive(c *fiber.Ctx) error {
	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.SetActive(c.UserContext(), c.Params("id"), req.Active); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user updated", nil)
}

// Delete DELETE /users/:id (ADMIN).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user deleted", nil)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Surname:        user.Surname,
		Email:          user.Email,
		Phone:          user.Phone,
		Role:           string(user.Role),
		PositionID:     user.PositionID,
		Position:       user.Position,
		MunicipalityID: user.MunicipalityID,
		Municipality:   user.Municipality,
		Active:         user.Active,
		CreatedAt:      user.CreatedAt,
	}
}
