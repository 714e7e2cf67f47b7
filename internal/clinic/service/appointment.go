package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/medranosoft/citamed/internal/clinic/domain"
	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/pkg/idx"
	"github.com/medranosoft/citamed/pkg/slogx"
)

var (
	ErrInvalidDoctor = errors.New("invalid_doctor")
	ErrSlotTaken     = errors.New("slot_taken")

	// ErrCannotCancel covers every patient-side cancel failure: the cita
	// does not exist, belongs to someone else, or is no longer pendiente.
	// One error for all three keeps cita ids unguessable.
	ErrCannotCancel = errors.New("cannot_cancel")
)

// AppointmentService implements the patient-facing cita operations.
type AppointmentService struct {
	Store store.Store
}

// ListDoctors returns every bookable doctor.
func (s *AppointmentService) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	return s.Store.Users().ListDoctors(ctx)
}

// Create books a cita for the patient. It runs inside a transaction so the
// free-slot check and the insert cannot race against a concurrent booking.
func (s *AppointmentService) Create(ctx context.Context, patientID, doctorID string, fechaHora time.Time, motivo string) (domain.Appointment, error) {
	motivo = strings.TrimSpace(motivo)
	if doctorID == "" || motivo == "" || fechaHora.IsZero() {
		return domain.Appointment{}, ErrValidation
	}

	a := domain.Appointment{
		ID:          idx.New().String(),
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: fechaHora.UTC(),
		Reason:      motivo,
		Status:      domain.StatusPendiente,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		doctor, err := tx.Users().GetUserByID(ctx, doctorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidDoctor
			}
			return err
		}
		if doctor.Role != domain.RoleDoctor {
			return ErrInvalidDoctor
		}

		taken, err := tx.Appointments().SlotTaken(ctx, doctorID, a.ScheduledAt)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}

		return tx.Appointments().CreateAppointment(ctx, a)
	})
	if err != nil {
		return domain.Appointment{}, err
	}

	slogx.FromContext(ctx).Info("cita created",
		"cita_id", a.ID,
		"medico_id", doctorID,
		"fecha_hora", a.ScheduledAt,
	)
	return a, nil
}

// ListMine returns the citas of the calling patient, newest first.
func (s *AppointmentService) ListMine(ctx context.Context, patientID string) ([]domain.AppointmentRow, error) {
	return s.Store.Appointments().ListByPatient(ctx, patientID)
}

// Cancel marks one of the patient's own pendiente citas as cancelada.
func (s *AppointmentService) Cancel(ctx context.Context, id, patientID string) error {
	ok, err := s.Store.Appointments().CancelOwned(ctx, id, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCannotCancel
	}

	slogx.FromContext(ctx).Info("cita cancelled", "cita_id", id, "paciente_id", patientID)
	return nil
}
