package service

import (
	"context"
	"errors"

	"github.com/medranosoft/citamed/internal/clinic/domain"
	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/pkg/slogx"
)

var (
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidRole   = errors.New("invalid_role")

	// ErrUserReferenced means the user still appears as médico on citas and
	// cannot be deleted until those citas are dealt with.
	ErrUserReferenced = errors.New("user_referenced")
)

// AdminService implements the staff-only operations over citas and users.
type AdminService struct {
	Store store.Store
}

// ListAllAppointments returns every cita in the system, newest first.
func (s *AdminService) ListAllAppointments(ctx context.Context) ([]domain.AppointmentRow, error) {
	return s.Store.Appointments().ListAll(ctx)
}

// SetStatus sets the estado of any cita, regardless of owner or current
// state. Staff use it to confirm, mark attended, or cancel.
func (s *AdminService) SetStatus(ctx context.Context, citaID, estado string) error {
	if !domain.ValidStatus(estado) {
		return ErrInvalidStatus
	}

	if err := s.Store.Appointments().SetStatus(ctx, citaID, estado); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("cita status updated", "cita_id", citaID, "estado", estado)
	return nil
}

// ListUsers returns every account, ordered by full name.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// SetRole changes a user's role.
func (s *AdminService) SetRole(ctx context.Context, userID, role string) error {
	if !domain.ValidRole(role) {
		return ErrInvalidRole
	}

	if err := s.Store.Users().UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user role updated", "user_id", userID, "role", role)
	return nil
}

// DeleteUser removes an account together with the citas it booked as a
// patient. The removal is atomic. If the user is a doctor with citas still
// assigned to them the delete fails with ErrUserReferenced.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Appointments().DeleteByPatient(ctx, userID); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrReferenced) {
			return ErrUserReferenced
		}
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", "user_id", userID)
	return nil
}
