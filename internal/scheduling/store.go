package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	// Specialization is free text and only set when Role is doctor; it is
	// cleared for every other role at registration.
	Specialization string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Appointment struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	// Date is the calendar day (midnight UTC); StartTime is "HH:MM".
	Date      time.Time
	StartTime string
	Reason    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot is the schedulable unit: one doctor, one day, one time of day.
type Slot struct {
	DoctorID uuid.UUID
	Date     time.Time
	Time     string
}

// Counts are the read-only aggregates shown on the admin dashboard.
type Counts struct {
	Doctors      int
	Patients     int
	Appointments map[Status]int
}

// Store is the persistence contract for the scheduling core. Implementations:
// repo.Store (Postgres) and MemoryStore (dev mode and tests).
//
// CreateUser returns ErrDuplicateEmail when the case-normalized email exists.
// CreateAppointment must be atomic with respect to the slot invariant: of two
// concurrent inserts for the same live slot exactly one may succeed, the other
// returns ErrSlotUnavailable. UpdateAppointmentStatus re-verifies the current
// status in the same write and returns ErrInvalidTransition when it is no
// longer in from. Lookups return ErrNotFound for unknown ids.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*User, error)
	// UsersByRole is ordered by name.
	UsersByRole(ctx context.Context, role Role) ([]User, error)

	CreateAppointment(ctx context.Context, a *Appointment) error
	AppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// AppointmentsByPatient is newest-first, AppointmentsByDoctor soonest-first.
	AppointmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error)
	AppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from []Status, to Status) error
	SlotTaken(ctx context.Context, slot Slot) (bool, error)

	DashboardCounts(ctx context.Context) (*Counts, error)
}
