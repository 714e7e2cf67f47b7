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

// CitasHandler serves the patient-facing cita endpoints. All routes require
// an authenticated user; the patient id always comes from the token, never
// from the request body.
type CitasHandler struct {
	AppointmentService *service.AppointmentService
	UserService        *service.UserService
}

func (h *CitasHandler) HandleDoctors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doctors, err := h.AppointmentService.ListDoctors(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list doctors", "err", err)
		httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, doctorList(doctors))
}

func (h *CitasHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteMsg(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	citas, err := h.AppointmentService.ListMine(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list citas", "user_id", userID, "err", err)
		httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, appointmentList(citas))
}

// HandleMe mirrors GET /users/me for clients that fetch the profile through
// the citas routes.
func (h *CitasHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	serveMe(w, r, h.UserService)
}

func (h *CitasHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteMsg(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	var req clinicsdk.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	cita, err := h.AppointmentService.Create(ctx, userID, req.DoctorID, req.ScheduledAt, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteMsg(w, http.StatusBadRequest, "Datos inválidos")
		case errors.Is(err, service.ErrInvalidDoctor):
			httpx.WriteMsg(w, http.StatusBadRequest, "Médico no válido")
		case errors.Is(err, service.ErrSlotTaken):
			httpx.WriteMsg(w, http.StatusBadRequest, "El médico ya tiene una cita en ese horario")
		default:
			log.Error("failed to create cita", "user_id", userID, "err", err)
			httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.CreateAppointmentResponse{
		Msg: "Cita creada correctamente",
		ID:  cita.ID,
	})
}

func (h *CitasHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteMsg(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	citaID := r.PathValue("id")
	if err := h.AppointmentService.Cancel(ctx, citaID, userID); err != nil {
		// Same answer whether the cita is missing, someone else's, or no
		// longer pendiente, so ids cannot be probed.
		if errors.Is(err, service.ErrCannotCancel) {
			httpx.WriteMsg(w, http.StatusBadRequest, "No se pudo cancelar la cita")
			return
		}
		slogx.FromContext(ctx).Error("failed to cancel cita", "cita_id", citaID, "err", err)
		httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		return
	}

	httpx.WriteMsg(w, http.StatusOK, "Cita cancelada correctamente")
}
