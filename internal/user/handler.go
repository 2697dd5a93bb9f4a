package user

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DrawDrewpf/FullMart-sub000/internal/auth"
	"github.com/DrawDrewpf/FullMart-sub000/internal/cache"
	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
	"github.com/DrawDrewpf/FullMart-sub000/internal/validation"
)

// Handler exposes the auth and profile endpoints.
type Handler struct {
	service      *Service
	jwtSecret    string
	tokenTTL     time.Duration
	loginLimiter *cache.Limiter
}

func NewHandler(service *Service, jwtSecret string, tokenTTL time.Duration, loginLimiter *cache.Limiter) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret, tokenTTL: tokenTTL, loginLimiter: loginLimiter}
}

// RegisterPublicRoutes wires the unauthenticated endpoints. loginGuard is the
// fixed-window limiter middleware keyed by IP+email; the handler refunds the
// attempt on success so only failed logins consume budget.
func (h *Handler) RegisterPublicRoutes(app *fiber.App, loginGuard fiber.Handler) {
	app.Post("/api/auth/register", h.register)
	if loginGuard != nil {
		app.Post("/api/auth/login", loginGuard, h.login)
	} else {
		app.Post("/api/auth/login", h.login)
	}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW fiber.Handler) {
	app.Get("/api/users/profile", authMW, h.getProfile)
	app.Put("/api/users/profile", authMW, h.updateProfile)
	app.Put("/api/users/password", authMW, h.changePassword)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileUpdateRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	created, err := h.service.Register(User{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
	})
	if err != nil {
		if err == ErrEmailExists {
			return response.Fail(c, fiber.StatusConflict, "email already exists")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not create account")
	}

	token, err := h.issueToken(created)
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "failed to generate token")
	}
	return response.Created(c, fiber.Map{"user": created, "token": token})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	// successful logins do not count against the login budget
	if h.loginLimiter != nil {
		h.loginLimiter.Decrement(cache.LoginKey(c.IP(), payload.Email))
	}

	token, err := h.issueToken(u)
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "failed to generate token")
	}
	return response.OK(c, fiber.Map{"user": u, "token": token})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	u, err := h.service.GetByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return response.Fail(c, fiber.StatusNotFound, "user not found")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not load profile")
	}
	return response.OK(c, u)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(profileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	updated, err := h.service.UpdateProfile(userID, payload.Name, payload.Email)
	if err != nil {
		switch err {
		case ErrNotFound:
			return response.Fail(c, fiber.StatusNotFound, "user not found")
		case ErrEmailExists:
			return response.Fail(c, fiber.StatusConflict, "email already exists")
		default:
			return response.Fail(c, fiber.StatusInternalServerError, "could not update profile")
		}
	}
	return response.OK(c, updated)
}

func (h *Handler) changePassword(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(changePasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	if _, err := h.service.ChangePassword(userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		switch err {
		case ErrNotFound:
			return response.Fail(c, fiber.StatusNotFound, "user not found")
		case ErrInvalidCredentials:
			return response.Fail(c, fiber.StatusUnauthorized, "current password is incorrect")
		default:
			return response.Fail(c, fiber.StatusInternalServerError, "could not change password")
		}
	}
	return response.Message(c, "password updated")
}

func (h *Handler) issueToken(u User) (string, error) {
	return auth.Sign(h.jwtSecret, h.tokenTTL, auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role})
}
