package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

// CreateAppointment inserts the row; the partial unique index over live
// statuses turns a lost booking race into a unique violation, reported as
// ErrSlotUnavailable.
func (s *Store) CreateAppointment(ctx context.Context, a *scheduling.Appointment) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, start_time, reason, status)
		VALUES ($1, $2, $3, $4, $5::time, NULLIF($6, ''), $7)
		RETURNING created_at, updated_at
	`, a.ID, a.PatientID, a.DoctorID, a.Date, a.StartTime, a.Reason, string(a.Status)).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if isUniqueViolation(err) {
		return scheduling.ErrSlotUnavailable
	}
	return err
}

const appointmentColumns = `id, patient_id, doctor_id, appointment_date, start_time::text,
	COALESCE(reason, ''), status, created_at, updated_at`

func (s *Store) AppointmentByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments WHERE id = $1
	`, id)
	var a scheduling.Appointment
	var startTime, status string
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &startTime,
		&a.Reason, &status, &a.CreatedAt, &a.UpdatedAt)
	if notFound(err) {
		return nil, scheduling.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.StartTime = timeToHHMM(startTime)
	a.Status = scheduling.Status(status)
	return &a, nil
}

func (s *Store) AppointmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]scheduling.Appointment, error) {
	return s.listAppointments(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1
		ORDER BY appointment_date DESC, start_time DESC
	`, patientID)
}

func (s *Store) AppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]scheduling.Appointment, error) {
	return s.listAppointments(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY appointment_date ASC, start_time ASC
	`, doctorID)
}

func (s *Store) listAppointments(ctx context.Context, query string, arg any) ([]scheduling.Appointment, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scheduling.Appointment
	for rows.Next() {
		var a scheduling.Appointment
		var startTime, status string
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &startTime,
			&a.Reason, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.StartTime = timeToHHMM(startTime)
		a.Status = scheduling.Status(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAppointmentStatus re-verifies the current status in the UPDATE
// predicate; zero affected rows means it changed concurrently.
func (s *Store) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from []scheduling.Status, to scheduling.Status) error {
	froms := make([]string, len(from))
	for i, f := range from {
		froms[i] = string(f)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE appointments SET status = $1, updated_at = now()
		WHERE id = $2 AND status = ANY($3)
	`, string(to), id, froms)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return scheduling.ErrInvalidTransition
	}
	return nil
}

func (s *Store) SlotTaken(ctx context.Context, slot scheduling.Slot) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND appointment_date = $2
			  AND start_time = $3::time
			  AND status IN ('pending', 'approved')
		)
	`, slot.DoctorID, slot.Date, slot.Time).Scan(&taken)
	return taken, err
}

// timeToHHMM returns "HH:MM" from a DB time string ("HH:MM:SS" or "HH:MM").
func timeToHHMM(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
