package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/medranosoft/citamed/internal/clinic/domain"
)

type appointmentsRepo struct {
	db dbtx
}

func (r *appointmentsRepo) CreateAppointment(ctx context.Context, a domain.Appointment) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO citas (id, paciente_id, medico_id, fecha_hora, motivo, estado, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PatientID, a.DoctorID, a.ScheduledAt.UTC(), a.Reason, a.Status, now, now,
	)
	return mapConstraint(err)
}

func (r *appointmentsRepo) GetAppointmentByID(ctx context.Context, id string) (domain.Appointment, error) {
	var a domain.Appointment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, paciente_id, medico_id, fecha_hora, motivo, estado, created_at, updated_at
		FROM citas WHERE id = ?`, id,
	).Scan(
		&a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt,
		&a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Appointment{}, mapNotFound(err)
	}
	return a, nil
}

const rowColumns = `
	c.id, c.paciente_id, p.full_name, c.medico_id, m.full_name,
	c.fecha_hora, c.motivo, c.estado`

func scanRows(rows *sql.Rows, queryErr error) ([]domain.AppointmentRow, error) {
	if queryErr != nil {
		return nil, queryErr
	}
	defer rows.Close()

	var out []domain.AppointmentRow
	for rows.Next() {
		var row domain.AppointmentRow
		if err := rows.Scan(
			&row.ID, &row.PatientID, &row.PatientName, &row.DoctorID, &row.DoctorName,
			&row.ScheduledAt, &row.Reason, &row.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *appointmentsRepo) ListByPatient(ctx context.Context, patientID string) ([]domain.AppointmentRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+rowColumns+`
		FROM citas c
		JOIN users p ON p.id = c.paciente_id
		JOIN users m ON m.id = c.medico_id
		WHERE c.paciente_id = ?
		ORDER BY c.fecha_hora DESC`, patientID,
	)
	return scanRows(rows, err)
}

func (r *appointmentsRepo) ListAll(ctx context.Context) ([]domain.AppointmentRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+rowColumns+`
		FROM citas c
		JOIN users p ON p.id = c.paciente_id
		JOIN users m ON m.id = c.medico_id
		ORDER BY c.fecha_hora DESC`,
	)
	return scanRows(rows, err)
}

// CancelOwned is a single conditional UPDATE so ownership, existence and the
// pendiente check cannot race against a concurrent staff update.
func (r *appointmentsRepo) CancelOwned(ctx context.Context, id string, patientID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE citas SET estado = ?, updated_at = ?
		WHERE id = ? AND paciente_id = ? AND estado = ?`,
		domain.StatusCancelada, time.Now().UTC(), id, patientID, domain.StatusPendiente,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *appointmentsRepo) SetStatus(ctx context.Context, id string, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE citas SET estado = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *appointmentsRepo) SlotTaken(ctx context.Context, doctorID string, fechaHora time.Time) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM citas
			WHERE medico_id = ? AND fecha_hora = ? AND estado != ?
		)`,
		doctorID, fechaHora.UTC(), domain.StatusCancelada,
	).Scan(&taken)
	return taken, err
}

func (r *appointmentsRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM citas WHERE paciente_id = ?`, patientID)
	return err
}
