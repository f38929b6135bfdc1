package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/tennis-league/middleware"
	"github.com/Dosada05/tennis-league/services"
	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	now         func() time.Time
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		now:         time.Now,
	}
}

// Login godoc
// @Summary Sign in as league admin
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginInput true "Email and password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	now := h.now()
	claims := jwt.MapClaims{
		middleware.JWTClaimUserID: user.ID,
		middleware.JWTClaimRole:   string(user.Role()),
		"exp":                     now.Add(tokenTTL).Unix(),
		"iat":                     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	respond(w, r, http.StatusOK, jsonResponse{
		"token": tokenString,
		"user":  user,
	})
}
