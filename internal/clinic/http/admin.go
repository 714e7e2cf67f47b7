package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medranosoft/citamed/internal/clinic/service"
	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/pkg/clinicsdk"
	"github.com/medranosoft/citamed/pkg/httpx"
	"github.com/medranosoft/citamed/pkg/slogx"
)

// AdminHandler serves the staff-only endpoints. The router already enforces
// the admin role before any of these run.
type AdminHandler struct {
	AdminService *service.AdminService
}

func (h *AdminHandler) HandleListCitas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	citas, err := h.AdminService.ListAllAppointments(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list all citas", "err", err)
		httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, appointmentList(citas))
}

func (h *AdminHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	citaID := r.PathValue("id")

	var req clinicsdk.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := h.AdminService.SetStatus(ctx, citaID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			httpx.WriteMsg(w, http.StatusBadRequest, "Estado no válido")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteMsg(w, http.StatusNotFound, "Cita no encontrada")
		default:
			slogx.FromContext(ctx).Error("failed to set cita status", "cita_id", citaID, "err", err)
			httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		}
		return
	}

	httpx.WriteMsg(w, http.StatusOK, "Estado actualizado correctamente")
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.AdminService.ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "err", err)
		httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		return
	}

	out := make([]clinicsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u.Public()))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	var req clinicsdk.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := h.AdminService.SetRole(ctx, userID, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteMsg(w, http.StatusBadRequest, "Rol no válido")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteMsg(w, http.StatusNotFound, "Usuario no encontrado")
		default:
			slogx.FromContext(ctx).Error("failed to set role", "user_id", userID, "err", err)
			httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		}
		return
	}

	httpx.WriteMsg(w, http.StatusOK, "Rol actualizado correctamente")
}

func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("id")

	if err := h.AdminService.DeleteUser(ctx, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteMsg(w, http.StatusNotFound, "Usuario no encontrado")
		case errors.Is(err, service.ErrUserReferenced):
			httpx.WriteMsg(w, http.StatusConflict, "No se puede eliminar: el médico tiene citas asignadas")
		default:
			slogx.FromContext(ctx).Error("failed to delete user", "user_id", userID, "err", err)
			httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		}
		return
	}

	httpx.WriteMsg(w, http.StatusOK, "Usuario eliminado correctamente")
}
