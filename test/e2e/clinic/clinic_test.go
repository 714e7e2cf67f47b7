// End-to-end journey through the full HTTP stack using the SDK client:
// registration, login, booking, staff management and account removal.
package clinic_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/medranosoft/citamed/internal/clinic/http"
	"github.com/medranosoft/citamed/internal/clinic/service"
	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/internal/clinic/store/drivers/sqlite"
	"github.com/medranosoft/citamed/pkg/clinicsdk"
	"github.com/medranosoft/citamed/pkg/cryptox"
	"github.com/medranosoft/citamed/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "citamed-e2e-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(tmpDir, "test-pepper"))

	code := m.Run()
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

// startService assembles the real router over an in-memory database and
// exposes it through httptest.
func startService(t *testing.T) (*clinicsdk.Client, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hs, err := jwtx.NewHS256("e2e-test-secret", "citamed-e2e")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := httpapi.NewRouter(hs, "e2e", st, logger)
	router.UserService = &service.UserService{
		Store:    st,
		Signer:   hs,
		Issuer:   "citamed-e2e",
		TokenTTL: time.Hour,
	}
	router.AppointmentService = &service.AppointmentService{Store: st}
	router.AdminService = &service.AdminService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return clinicsdk.NewClient(srv.URL), st
}

func TestClinicJourney(t *testing.T) {
	ctx := context.Background()
	client, st := startService(t)

	health, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	// Three fresh accounts: future admin, future doctor, and a patient.
	adminID, err := client.Register(ctx, clinicsdk.RegisterRequest{
		Username: "admin", Email: "admin@clinic.test", FullName: "Alte Admin", Password: "admin-pw",
	})
	require.NoError(t, err)
	doctorID, err := client.Register(ctx, clinicsdk.RegisterRequest{
		Username: "dr.gomez", Email: "gomez@clinic.test", FullName: "Dr. Gómez", Password: "doctor-pw",
	})
	require.NoError(t, err)
	_, err = client.Register(ctx, clinicsdk.RegisterRequest{
		Username: "maria", Email: "maria@clinic.test", FullName: "María López", Password: "maria-pw",
	})
	require.NoError(t, err)

	// Accounts always start as patients; promote the first one directly in
	// the store to bootstrap an admin.
	require.NoError(t, st.Users().UpdateRole(ctx, adminID, "admin"))

	adminSession, err := client.Login(ctx, "admin", "admin-pw")
	require.NoError(t, err)
	require.Equal(t, "admin", adminSession.Role)

	// Admin promotes the doctor through the API.
	require.NoError(t, adminSession.SetUserRole(ctx, doctorID, "doctor"))

	// The patient signs in with their email address.
	patientSession, err := client.Login(ctx, "maria@clinic.test", "maria-pw")
	require.NoError(t, err)
	require.Equal(t, "maria", patientSession.Username)

	// The patient can now see exactly one doctor and books a cita.
	doctors, err := patientSession.Doctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	require.Equal(t, doctorID, doctors[0].ID)

	slot := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	citaID, err := patientSession.CreateAppointment(ctx, clinicsdk.CreateAppointmentRequest{
		DoctorID:    doctors[0].ID,
		ScheduledAt: slot,
		Reason:      "Dolor de espalda",
	})
	require.NoError(t, err)

	// Booking the same doctor and slot again fails.
	_, err = patientSession.CreateAppointment(ctx, clinicsdk.CreateAppointmentRequest{
		DoctorID:    doctors[0].ID,
		ScheduledAt: slot,
		Reason:      "Otra consulta",
	})
	var apiErr *clinicsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	// The patient sees their cita; a fresh staff view sees it too.
	mine, err := patientSession.MyAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "pendiente", mine[0].Status)

	all, err := adminSession.AllAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "María López", all[0].PatientName)

	// Reception confirms, the patient can no longer cancel.
	require.NoError(t, adminSession.SetAppointmentStatus(ctx, citaID, "confirmada"))
	err = patientSession.CancelAppointment(ctx, citaID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	// The patient cannot reach staff endpoints at all.
	_, err = patientSession.AllAppointments(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	// Deleting the doctor fails while the cita exists, then succeeds after
	// the cita's patient is removed.
	err = adminSession.DeleteUser(ctx, doctorID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)

	users, err := adminSession.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	var mariaID string
	for _, u := range users {
		if u.Username == "maria" {
			mariaID = u.ID
		}
	}
	require.NotEmpty(t, mariaID)

	require.NoError(t, adminSession.DeleteUser(ctx, mariaID))
	require.NoError(t, adminSession.DeleteUser(ctx, doctorID))

	// The deleted patient's token no longer resolves to an account.
	_, err = patientSession.Me(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
