package auth

import (
	"encoding/json"
	"net/http"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  user.UserDTO `json:"user"`
}

type Handler struct {
	users  user.Service
	tokens TokenManager
}

func NewHandler(users user.Service, tokens TokenManager) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Signup godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body SignupRequest true "New user"
// @Success 201 {object} user.UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Email already exists"
// @Router /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	log.Debug("Signup request")
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	created, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(user.ToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Login godoc
// @Summary Log in and receive an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} rest.ErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log.Debug("Login request")
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(u.Uid)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LoginResponse{Token: token, User: user.ToDTO(u)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
