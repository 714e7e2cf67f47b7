// Package clinicsdk provides a typed Go client for the citamed API plus the
// wire types shared between the server handlers and client code.
package clinicsdk

import "time"

// LoginRequest authenticates an existing account. Username also accepts the
// account's email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the public account shape. The password hash never leaves the server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// LoginResponse carries the signed bearer token plus the identity fields the
// SPA renders without a second request.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// RegisterRequest creates a new patient account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// RegisterResponse confirms the registration and returns the new account id.
type RegisterResponse struct {
	Msg string `json:"msg"`
	ID  string `json:"id"`
}

// ForgotPasswordRequest replaces the password of the named account.
type ForgotPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

// Doctor is a bookable médico.
type Doctor struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// Appointment is a cita joined with the names of patient and doctor.
type Appointment struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"paciente_id"`
	PatientName string    `json:"paciente_nombre"`
	DoctorID    string    `json:"medico_id"`
	DoctorName  string    `json:"medico_nombre"`
	ScheduledAt time.Time `json:"fecha_hora"`
	Reason      string    `json:"motivo"`
	Status      string    `json:"estado"`
}

// CreateAppointmentRequest books a cita with a doctor at a point in time.
type CreateAppointmentRequest struct {
	DoctorID    string    `json:"medico_id"`
	ScheduledAt time.Time `json:"fecha_hora"`
	Reason      string    `json:"motivo"`
}

// CreateAppointmentResponse confirms the booking and returns the new cita id.
type CreateAppointmentResponse struct {
	Msg string `json:"msg"`
	ID  string `json:"id"`
}

// SetStatusRequest moves a cita into a new estado (staff only).
type SetStatusRequest struct {
	Status string `json:"estado"`
}

// SetRoleRequest changes an account's role (staff only).
type SetRoleRequest struct {
	Role string `json:"role"`
}

// HealthChecks reports the state of each critical dependency.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
