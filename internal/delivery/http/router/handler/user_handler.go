package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"
)

// UserHandler holds dependencies for user management handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

type createUserRequest struct {
	Email       string             `json:"email" validate:"required,email"`
	Username    string             `json:"username" validate:"required,min=3,max=50"`
	Password    string             `json:"password" validate:"required,min=8"`
	Role        entity.Role        `json:"role"`
	Permissions entity.Permissions `json:"permissions"`
	FirstName   string             `json:"first_name" validate:"required"`
	LastName    string             `json:"last_name" validate:"required"`
	Phone       string             `json:"phone"`
}

type updateUserRequest struct {
	Email       *string             `json:"email" validate:"omitempty,email"`
	Username    *string             `json:"username" validate:"omitempty,min=3,max=50"`
	Role        *entity.Role        `json:"role"`
	Permissions *entity.Permissions `json:"permissions"`
	IsVerified  *bool               `json:"is_verified"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

// Create handles the admin user creation request.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.Create(c.Request().Context(), &usecase.CreateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: req.Permissions,
		Profile: entity.UserProfile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user, "User created successfully")
}

// List handles the paginated user listing request.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context(), listInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// Get handles the fetch-by-id request.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Me returns the authenticated identity.
func (h *UserHandler) Me(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	return response.Success(c, http.StatusOK, identity, "")
}

// Update handles the admin user update request.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.Update(c.Request().Context(), c.Param("id"), &usecase.UpdateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		Role:        req.Role,
		Permissions: req.Permissions,
		IsVerified:  req.IsVerified,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// UpdateProfile lets the authenticated user change their own profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), identity.ID.Hex(), &usecase.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

// Deactivate soft-deletes a user.
func (h *UserHandler) Deactivate(c echo.Context) error {
	if err := h.uc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User deactivated"}, "")
}

// Activate restores a soft-deleted user.
func (h *UserHandler) Activate(c echo.Context) error {
	if err := h.uc.Activate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User activated"}, "")
}

// Unlock clears a locked account.
func (h *UserHandler) Unlock(c echo.Context) error {
	if err := h.uc.Unlock(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User unlocked"}, "")
}
