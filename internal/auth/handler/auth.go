package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"roamly/internal/auth/service"
	apperrors "roamly/pkg/errors"
	httputil "roamly/pkg/http"
	"roamly/pkg/logger"
	"roamly/pkg/middleware"
	"roamly/pkg/model"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type verifyResponse struct {
	User *model.User `json:"user"`
}

type AuthHandler struct {
	service service.AuthService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewAuthHandler(
	service service.AuthService,
	auth func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, err := decodeRegisterRequest(r)
	if err != nil {
		h.writeError(w, "Register", apperrors.InvalidInput("Invalid request body"))
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, registerResponse{
		Message: "User registered successfully",
		User:    user,
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Register", "error", err)
	}
}

// decodeRegisterRequest reads the registration body. Registration is the one
// endpoint that accepts form submissions in addition to JSON.
func decodeRegisterRequest(r *http.Request) (registerRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return registerRequest{}, err
		}
		return registerRequest{
			Name:     r.PostFormValue("name"),
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}, nil
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return registerRequest{}, err
	}
	return req, nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Login", apperrors.InvalidInput("Invalid request body"))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, loginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Login", "error", err)
	}
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		h.writeError(w, "Verify", apperrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.service.Verify(r.Context(), claims)
	if err != nil {
		h.writeError(w, "Verify", err)
		return
	}

	if err := httputil.WriteSuccess(w, verifyResponse{User: user}); err != nil {
		h.log.Error("failed to write response", "handler", "Verify", "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, op string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/register", h.Register)
	router.POST("/api/admin/login", h.Login)
	router.GET("/api/admin/verify", h.auth(h.Verify))
}
