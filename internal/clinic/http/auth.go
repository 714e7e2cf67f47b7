package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medranosoft/citamed/internal/clinic/service"
	"github.com/medranosoft/citamed/pkg/clinicsdk"
	"github.com/medranosoft/citamed/pkg/httpx"
	"github.com/medranosoft/citamed/pkg/slogx"
)

// AuthHandler serves login, registration and password recovery. The error
// messages are in Spanish because the SPA shows them to patients verbatim.
type AuthHandler struct {
	UserService *service.UserService
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clinicsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	token, user, err := h.UserService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteMsg(w, http.StatusBadRequest, "Usuario o contraseña incorrectos")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.LoginResponse{
		Token:    token,
		Role:     user.Role,
		Username: user.Username,
		FullName: user.FullName,
	})
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clinicsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Email, req.FullName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		case errors.Is(err, service.ErrUserExists):
			httpx.WriteMsg(w, http.StatusBadRequest, "El usuario o correo ya existe")
		default:
			log.Error("register failed", "err", err)
			httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.RegisterResponse{
		Msg: "Usuario registrado correctamente",
		ID:  user.ID,
	})
}

func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clinicsdk.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	err := h.UserService.ResetPassword(ctx, req.Username, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteMsg(w, http.StatusBadRequest, "Usuario no encontrado")
		default:
			log.Error("password reset failed", "err", err)
			httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		}
		return
	}

	httpx.WriteMsg(w, http.StatusOK, "Contraseña actualizada correctamente")
}
