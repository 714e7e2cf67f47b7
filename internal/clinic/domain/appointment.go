package domain

import "time"

// Estados of a cita. Every cita starts as pendiente; cancellation by the
// patient is only allowed from pendiente, while staff can set any estado.
const (
	StatusPendiente  = "pendiente"
	StatusConfirmada = "confirmada"
	StatusAtendida   = "atendida"
	StatusCancelada  = "cancelada"
)

// ValidStatus reports whether estado names one of the four cita states.
func ValidStatus(estado string) bool {
	switch estado {
	case StatusPendiente, StatusConfirmada, StatusAtendida, StatusCancelada:
		return true
	}
	return false
}

// Appointment is a cita as stored: patient and doctor by id only.
type Appointment struct {
	ID          string
	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	Reason      string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppointmentRow is a cita joined with the names of both parties, the shape
// the listing endpoints return.
type AppointmentRow struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"paciente_id"`
	PatientName string    `json:"paciente_nombre"`
	DoctorID    string    `json:"medico_id"`
	DoctorName  string    `json:"medico_nombre"`
	ScheduledAt time.Time `json:"fecha_hora"`
	Reason      string    `json:"motivo"`
	Status      string    `json:"estado"`
}
