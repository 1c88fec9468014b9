package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

type userRow struct {
	ID             uuid.UUID
	Name           string
	Email          string
	PasswordHash   string
	Role           string
	Specialization string
}

func (s *Store) UsersByRole(ctx context.Context, role scheduling.Role) ([]scheduling.User, error) {
	var rows []userRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT id, name, email, password_hash, role, COALESCE(specialization, '') AS specialization
		FROM users WHERE role = ? ORDER BY name
	`, string(role)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]scheduling.User, len(rows))
	for i, r := range rows {
		out[i] = scheduling.User{
			ID:             r.ID,
			Name:           r.Name,
			Email:          r.Email,
			PasswordHash:   r.PasswordHash,
			Role:           scheduling.Role(r.Role),
			Specialization: r.Specialization,
		}
	}
	return out, nil
}

func (s *Store) DashboardCounts(ctx context.Context) (*scheduling.Counts, error) {
	c := &scheduling.Counts{Appointments: make(map[scheduling.Status]int)}

	var roleRows []struct {
		Role string
		N    int
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT role, COUNT(*) AS n FROM users GROUP BY role
	`).Scan(&roleRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range roleRows {
		switch scheduling.Role(r.Role) {
		case scheduling.RoleDoctor:
			c.Doctors = r.N
		case scheduling.RolePatient:
			c.Patients = r.N
		}
	}

	var statusRows []struct {
		Status string
		N      int
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS n FROM appointments GROUP BY status
	`).Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range statusRows {
		c.Appointments[scheduling.Status(r.Status)] = r.N
	}
	return c, nil
}
