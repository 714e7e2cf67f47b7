package http

import (
	"github.com/medranosoft/citamed/internal/clinic/domain"
	"github.com/medranosoft/citamed/pkg/clinicsdk"
)

func publicUser(u domain.PublicUser) clinicsdk.User {
	return clinicsdk.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

func doctorList(in []domain.Doctor) []clinicsdk.Doctor {
	out := make([]clinicsdk.Doctor, 0, len(in))
	for _, d := range in {
		out = append(out, clinicsdk.Doctor{ID: d.ID, FullName: d.FullName})
	}
	return out
}

func appointmentList(in []domain.AppointmentRow) []clinicsdk.Appointment {
	out := make([]clinicsdk.Appointment, 0, len(in))
	for _, row := range in {
		out = append(out, clinicsdk.Appointment{
			ID:          row.ID,
			PatientID:   row.PatientID,
			PatientName: row.PatientName,
			DoctorID:    row.DoctorID,
			DoctorName:  row.DoctorName,
			ScheduledAt: row.ScheduledAt,
			Reason:      row.Reason,
			Status:      row.Status,
		})
	}
	return out
}
