package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/services"
)

type AuthHandler struct {
	authService  services.AuthService
	tokenService *services.TokenService
}

func NewAuthHandler(authService services.AuthService, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Token exchanges username/password credentials for a bearer token. Both
// form-encoded and JSON bodies are accepted.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	credentials, err := readCredentials(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Authenticate(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.tokenService.Issue(user.Username)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"access_token": token,
		"token_type":   "bearer",
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func readCredentials(w http.ResponseWriter, r *http.Request) (*models.Credentials, error) {
	var credentials models.Credentials

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") || strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return nil, errors.New("invalid form body")
		}
		credentials.Username = r.PostFormValue("username")
		credentials.Password = r.PostFormValue("password")
	} else {
		if err := readJSON(w, r, &credentials); err != nil {
			return nil, err
		}
	}

	if credentials.Username == "" || credentials.Password == "" {
		return nil, errors.New("username and password are required")
	}
	return &credentials, nil
}
