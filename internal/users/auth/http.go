// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/constants"
	"github.com/novaria/api/internal/platform/middleware"
	requestutil "github.com/novaria/api/internal/platform/request"
	"github.com/novaria/api/internal/platform/respond"
	"github.com/novaria/api/internal/platform/validate"
)

// # HTTP Transport

// Handler exposes the authentication service over REST endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the authentication [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes wires all authentication endpoints into a router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/verify-email", handler.verifyEmail)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/logout", handler.logout)
		protected.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

// # Endpoint Handlers

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := validate.New()
	validator.Required(FieldUsername, payload.Username)
	validator.MinLen(FieldUsername, payload.Username, 3)
	validator.MaxLen(FieldUsername, payload.Username, 50)
	validator.Required(FieldEmail, payload.Email)
	validator.Email(FieldEmail, payload.Email)
	validator.Required(FieldPassword, payload.Password)
	validator.MinLen(FieldPassword, payload.Password, 8)
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := validate.New()
	validator.Required(FieldLogin, payload.Login)
	validator.Required(FieldPassword, payload.Password)
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput{
		Login:     payload.Login,
		Password:  payload.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.ClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.User,
	})
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err == nil && cookie.Value != "" {
		if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	clearRefreshCookie(writer)
	respond.OK(writer, map[string]string{FieldMessage: "Logged out successfully"})
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	session, err := handler.service.RefreshSession(request.Context(), cookie.Value, request.UserAgent(), middleware.ClientIP(request))
	if err != nil {
		clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(AccessTokenTTL / time.Second),
	})
}

func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var payload forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := validate.New()
	validator.Required(FieldEmail, payload.Email)
	validator.Email(FieldEmail, payload.Email)
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	// The token is delivered out of band; the response never reveals
	// whether the email exists.
	if _, err := handler.service.RequestPasswordReset(request.Context(), payload.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "If the email exists, a password reset link has been sent",
	})
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var payload resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := validate.New()
	validator.Required(FieldToken, payload.Token)
	validator.Required(FieldNewPassword, payload.NewPassword)
	validator.MinLen(FieldNewPassword, payload.NewPassword, 8)
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	if err := handler.service.ResetPassword(request.Context(), payload.Token, payload.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Password has been reset"})
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload changePasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := validate.New()
	validator.Required(FieldCurrentPassword, payload.CurrentPassword)
	validator.Required(FieldNewPassword, payload.NewPassword)
	validator.MinLen(FieldNewPassword, payload.NewPassword, 8)
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	var currentRefreshToken string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		currentRefreshToken = cookie.Value
	}

	err = handler.service.ChangePassword(request.Context(), userID, payload.CurrentPassword, payload.NewPassword, currentRefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Password changed successfully"})
}

func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	var payload verifyEmailRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := validate.New()
	validator.Required(FieldToken, payload.Token)
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	if err := handler.service.VerifyEmail(request.Context(), payload.Token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Email verified successfully"})
}

// # Cookie Helpers

// setRefreshCookie scopes the refresh token cookie to the auth endpoints so
// it is never sent with regular API traffic.
func setRefreshCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
