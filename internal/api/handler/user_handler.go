package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dilahazalbilgin/VerifID/internal/api/metrics"
	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
	"github.com/dilahazalbilgin/VerifID/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/users.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return err
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		IDCardNumber: req.IDCardNumber,
		SerialNumber: req.SerialNumber,
		BirthDate:    birthDate,
		Gender:       req.Gender,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(result))
}

// Login handles POST /api/users/login.
//
// @Summary      Authenticate and obtain a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(result))
}

// UpdateProfile handles PUT /api/users/profile.
//
// @Summary      Partially update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		IDCardNumber: req.IDCardNumber,
		SerialNumber: req.SerialNumber,
		Gender:       req.Gender,
		IsVerified:   req.IsVerified,
		IDCardFace:   req.IDCardFace,
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return err
		}
		input.BirthDate = &birthDate
	}

	result, err := h.service.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(result))
}

// parseBirthDate accepts date-only or RFC 3339 timestamps. An empty string
// maps to the zero time so the service reports the field as missing.
func parseBirthDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, &domain.ValidationError{Fields: []string{"birth date must be a valid date"}}
}

func toUserResponse(r *ports.AuthResult) userResponse {
	return userResponse{
		ID:           r.User.ID,
		FirstName:    r.User.FirstName,
		LastName:     r.User.LastName,
		Email:        r.User.Email,
		IDCardNumber: r.User.IDCardNumber,
		SerialNumber: r.User.SerialNumber,
		BirthDate:    r.User.BirthDate,
		Gender:       r.User.Gender,
		IsVerified:   r.User.IsVerified,
		Token:        r.Token,
	}
}
