package service

import (
	"context"
	"testing"
	"time"

	"github.com/medranosoft/citamed/internal/clinic/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	citas := &AppointmentService{Store: st}

	patient := seedUser(t, st, "paciente1", domain.RoleUser)
	doctor := seedUser(t, st, "medico1", domain.RoleDoctor)
	slot := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)

	a, err := citas.Create(ctx, patient.ID, doctor.ID, slot, "Dolor de espalda")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPendiente, a.Status)
	require.Equal(t, slot, a.ScheduledAt)
	require.NotEmpty(t, a.ID)

	t.Run("doctor slot already taken", func(t *testing.T) {
		other := seedUser(t, st, "paciente2", domain.RoleUser)
		_, err := citas.Create(ctx, other.ID, doctor.ID, slot, "Chequeo")
		require.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("same slot with another doctor is fine", func(t *testing.T) {
		otherDoc := seedUser(t, st, "medico2", domain.RoleDoctor)
		_, err := citas.Create(ctx, patient.ID, otherDoc.ID, slot, "Chequeo")
		require.NoError(t, err)
	})

	t.Run("cancelled cita frees the slot", func(t *testing.T) {
		freed := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
		booked, err := citas.Create(ctx, patient.ID, doctor.ID, freed, "Control")
		require.NoError(t, err)
		require.NoError(t, citas.Cancel(ctx, booked.ID, patient.ID))

		_, err = citas.Create(ctx, patient.ID, doctor.ID, freed, "Control de nuevo")
		require.NoError(t, err)
	})
}

func TestCreateAppointmentRejectsBadDoctor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	citas := &AppointmentService{Store: st}

	patient := seedUser(t, st, "paciente1", domain.RoleUser)
	slot := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("unknown doctor id", func(t *testing.T) {
		_, err := citas.Create(ctx, patient.ID, "01K0000000000000000000MSNG", slot, "Chequeo")
		require.ErrorIs(t, err, ErrInvalidDoctor)
	})

	t.Run("target user is not a doctor", func(t *testing.T) {
		other := seedUser(t, st, "paciente2", domain.RoleUser)
		_, err := citas.Create(ctx, patient.ID, other.ID, slot, "Chequeo")
		require.ErrorIs(t, err, ErrInvalidDoctor)
	})

	t.Run("missing fields", func(t *testing.T) {
		doctor := seedUser(t, st, "medico1", domain.RoleDoctor)

		_, err := citas.Create(ctx, patient.ID, doctor.ID, slot, "   ")
		require.ErrorIs(t, err, ErrValidation)

		_, err = citas.Create(ctx, patient.ID, doctor.ID, time.Time{}, "Chequeo")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestListMineIsScopedToPatient(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	citas := &AppointmentService{Store: st}

	alice := seedUser(t, st, "alice", domain.RoleUser)
	bob := seedUser(t, st, "bob", domain.RoleUser)
	doctor := seedUser(t, st, "medico1", domain.RoleDoctor)

	early := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC)

	_, err := citas.Create(ctx, alice.ID, doctor.ID, early, "Primera")
	require.NoError(t, err)
	_, err = citas.Create(ctx, alice.ID, doctor.ID, late, "Segunda")
	require.NoError(t, err)
	_, err = citas.Create(ctx, bob.ID, doctor.ID, time.Date(2026, 9, 11, 9, 0, 0, 0, time.UTC), "De Bob")
	require.NoError(t, err)

	mine, err := citas.ListMine(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	// Newest first, joined with the doctor's name.
	require.Equal(t, "Segunda", mine[0].Reason)
	require.Equal(t, "Primera", mine[1].Reason)
	require.Equal(t, doctor.FullName, mine[0].DoctorName)
	require.Equal(t, alice.FullName, mine[0].PatientName)
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	citas := &AppointmentService{Store: st}
	admin := &AdminService{Store: st}

	patient := seedUser(t, st, "paciente1", domain.RoleUser)
	intruder := seedUser(t, st, "paciente2", domain.RoleUser)
	doctor := seedUser(t, st, "medico1", domain.RoleDoctor)

	a, err := citas.Create(ctx, patient.ID, doctor.ID, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), "Chequeo")
	require.NoError(t, err)

	t.Run("another patient cannot cancel it", func(t *testing.T) {
		require.ErrorIs(t, citas.Cancel(ctx, a.ID, intruder.ID), ErrCannotCancel)
	})

	t.Run("unknown cita", func(t *testing.T) {
		require.ErrorIs(t, citas.Cancel(ctx, "01K0000000000000000000MSNG", patient.ID), ErrCannotCancel)
	})

	t.Run("owner cancels a pendiente cita", func(t *testing.T) {
		require.NoError(t, citas.Cancel(ctx, a.ID, patient.ID))

		stored, err := st.Appointments().GetAppointmentByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusCancelada, stored.Status)
	})

	t.Run("cancel is only allowed from pendiente", func(t *testing.T) {
		b, err := citas.Create(ctx, patient.ID, doctor.ID, time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC), "Otra")
		require.NoError(t, err)
		require.NoError(t, admin.SetStatus(ctx, b.ID, domain.StatusConfirmada))

		require.ErrorIs(t, citas.Cancel(ctx, b.ID, patient.ID), ErrCannotCancel)
	})
}

func TestListDoctors(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	citas := &AppointmentService{Store: st}

	seedUser(t, st, "paciente1", domain.RoleUser)
	zoe := seedUser(t, st, "zoe", domain.RoleDoctor)
	abe := seedUser(t, st, "abe", domain.RoleDoctor)

	doctors, err := citas.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 2)

	// Ordered by full name, patients excluded.
	require.Equal(t, abe.ID, doctors[0].ID)
	require.Equal(t, zoe.ID, doctors[1].ID)
}
