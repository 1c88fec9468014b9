package scheduling

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store. It backs the server when DATABASE_URL is
// unset and the unit tests. The mutex is held across the slot check and the
// insert, so it gives the same one-winner guarantee as the partial unique
// index in Postgres.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]User
	appointments map[uuid.UUID]Appointment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[uuid.UUID]User),
		appointments: make(map[uuid.UUID]Appointment),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(u.Email)
	for _, ex := range m.users {
		if strings.ToLower(ex.Email) == email {
			return ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) UserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UserByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (m *MemoryStore) UsersByRole(_ context.Context, role Role) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) CreateAppointment(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slotTakenLocked(Slot{DoctorID: a.DoctorID, Date: a.Date, Time: a.StartTime}) {
		return ErrSlotUnavailable
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.appointments[a.ID] = *a
	return nil
}

func (m *MemoryStore) AppointmentByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (m *MemoryStore) AppointmentsByPatient(_ context.Context, patientID uuid.UUID) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return slotKey(out[i]) > slotKey(out[j]) })
	return out, nil
}

func (m *MemoryStore) AppointmentsByDoctor(_ context.Context, doctorID uuid.UUID) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return slotKey(out[i]) < slotKey(out[j]) })
	return out, nil
}

func (m *MemoryStore) UpdateAppointmentStatus(_ context.Context, id uuid.UUID, from []Status, to Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return ErrNotFound
	}
	match := false
	for _, f := range from {
		if a.Status == f {
			match = true
			break
		}
	}
	if !match {
		return ErrInvalidTransition
	}
	a.Status = to
	a.UpdatedAt = time.Now().UTC()
	m.appointments[id] = a
	return nil
}

func (m *MemoryStore) SlotTaken(_ context.Context, slot Slot) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slotTakenLocked(slot), nil
}

func (m *MemoryStore) DashboardCounts(_ context.Context) (*Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &Counts{Appointments: make(map[Status]int)}
	for _, u := range m.users {
		switch u.Role {
		case RoleDoctor:
			c.Doctors++
		case RolePatient:
			c.Patients++
		}
	}
	for _, a := range m.appointments {
		c.Appointments[a.Status]++
	}
	return c, nil
}

func (m *MemoryStore) slotTakenLocked(slot Slot) bool {
	for _, a := range m.appointments {
		if a.DoctorID == slot.DoctorID && a.Date.Equal(slot.Date) && a.StartTime == slot.Time && !a.Status.Terminal() {
			return true
		}
	}
	return false
}

func slotKey(a Appointment) string {
	return a.Date.Format("2006-01-02") + " " + a.StartTime
}
