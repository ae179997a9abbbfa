package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// LoginRequest is the request body for POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, "username is required")
	}
	if req.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// AdminRegisterRequest is the request body for POST /api/admin/register.
type AdminRegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} controllers.LoginResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/admin/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req, "Login failed") {
		return
	}
	token, admin, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}
		writeError(w, r, c.Logger, err, failure{failed: "Login failed"})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, Name: admin.Name})
}

// Register godoc
// @Summary Register an admin
// @Description Open while no admin exists; afterwards requires an admin token.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param admin body AdminRegisterRequest true "New admin"
// @Success 201 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/admin/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	const failed = "Registration failed"
	var req AdminRegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req, failed) {
		return
	}
	_, err := c.Service.Register(r.Context(), &domain.AdminSignUp{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			helpers.WriteJSONError(w, http.StatusBadRequest, "Username or email already exists", "")
			return
		}
		writeError(w, r, c.Logger, err, failure{failed: failed})
		return
	}
	helpers.WriteMessage(w, http.StatusCreated, "Admin registered successfully")
}
