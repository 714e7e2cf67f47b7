package store

import (
	"context"
	"errors"
	"time"

	"github.com/medranosoft/citamed/internal/clinic/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrReferenced is returned when a delete would break a foreign key,
	// e.g. removing a doctor that still has citas pointing at them.
	ErrReferenced = errors.New("store: row is referenced")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Appointments() Appointments

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// This is the recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername looks up a user by exact username.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByUsernameOrEmail resolves a login identifier that may be
	// either a username or an email address.
	GetUserByUsernameOrEmail(ctx context.Context, login string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when username or email are taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateRole changes a user's role and bumps updated_at.
	UpdateRole(ctx context.Context, userID string, role string) error

	// DeleteUser removes a user. Returns ErrReferenced when citas still
	// point at the user as médico.
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns all users ordered by full name.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListDoctors returns id and full name of every doctor, ordered by name.
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
}

type Appointments interface {
	// CreateAppointment inserts a new cita (id is ULID, status pendiente).
	CreateAppointment(ctx context.Context, a domain.Appointment) error

	// GetAppointmentByID returns a cita by id.
	GetAppointmentByID(ctx context.Context, id string) (domain.Appointment, error)

	// ListByPatient returns the citas of one patient joined with the
	// doctor's name, newest fecha_hora first.
	ListByPatient(ctx context.Context, patientID string) ([]domain.AppointmentRow, error)

	// ListAll returns every cita joined with both names, newest first.
	ListAll(ctx context.Context) ([]domain.AppointmentRow, error)

	// CancelOwned sets estado=cancelada on a cita, but only when it belongs
	// to patientID and is still pendiente. Returns false when no row
	// matched all three conditions.
	CancelOwned(ctx context.Context, id string, patientID string) (bool, error)

	// SetStatus sets the estado of a cita unconditionally (staff use).
	SetStatus(ctx context.Context, id string, status string) error

	// SlotTaken reports whether the doctor already has a non-cancelled cita
	// at exactly fechaHora.
	SlotTaken(ctx context.Context, doctorID string, fechaHora time.Time) (bool, error)

	// DeleteByPatient removes every cita belonging to a patient. Used when
	// deleting the user itself.
	DeleteByPatient(ctx context.Context, patientID string) error
}
