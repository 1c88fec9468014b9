package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/auth"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	minPasswordLen = 8
)

// Actor is the authenticated identity performing an operation. It is always
// passed explicitly; the core keeps no notion of a current session.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Authorize is the capability check applied before role-gated operations.
func Authorize(actor *Actor, required Role) error {
	if actor == nil || actor.ID == uuid.Nil {
		return ErrUnauthenticated
	}
	if actor.Role != required {
		return ErrForbidden
	}
	return nil
}

// Service implements the appointment lifecycle and the identity operations on
// top of a Store. It owns every guard; handlers only translate HTTP.
type Service struct {
	store         Store
	hashPassword  func(string) (string, error)
	checkPassword func(hash, plain string) bool
}

func NewService(store Store) *Service {
	return &Service{
		store:         store,
		hashPassword:  auth.HashPassword,
		checkPassword: auth.CheckPassword,
	}
}

// SetHashPassword overrides the password hasher (tests use a cheap one).
func (s *Service) SetHashPassword(hash func(string) (string, error), check func(hash, plain string) bool) {
	s.hashPassword = hash
	s.checkPassword = check
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	Specialization string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	role, err := ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	spec := ""
	if role == RoleDoctor {
		spec = strings.TrimSpace(in.Specialization)
	}
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Role:           role,
		Specialization: spec,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies email and password. Every failure mode collapses to
// ErrInvalidCredentials so callers cannot probe which emails exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !s.checkPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.UserByID(ctx, id)
}

// Doctors returns the public doctor directory, name-ordered.
func (s *Service) Doctors(ctx context.Context) ([]User, error) {
	return s.store.UsersByRole(ctx, RoleDoctor)
}

// ListByRole is the admin manage-users listing; only doctor and patient
// listings exist, matching the original manage screens.
func (s *Service) ListByRole(ctx context.Context, actor Actor, role Role) ([]User, error) {
	if err := Authorize(&actor, RoleAdmin); err != nil {
		return nil, err
	}
	if role != RoleDoctor && role != RolePatient {
		return nil, fmt.Errorf("%w: cannot list role %q", ErrInvalidInput, role)
	}
	return s.store.UsersByRole(ctx, role)
}

// Dashboard returns the admin aggregates; read-only.
func (s *Service) Dashboard(ctx context.Context, actor Actor) (*Counts, error) {
	if err := Authorize(&actor, RoleAdmin); err != nil {
		return nil, err
	}
	return s.store.DashboardCounts(ctx)
}

// IsSlotTaken reports whether a pending or approved appointment already holds
// the (doctor, date, time) slot.
func (s *Service) IsSlotTaken(ctx context.Context, doctorID uuid.UUID, dateStr, timeStr string) (bool, error) {
	slot, err := parseSlot(doctorID, dateStr, timeStr)
	if err != nil {
		return false, err
	}
	return s.store.SlotTaken(ctx, slot)
}

type BookingInput struct {
	DoctorID uuid.UUID
	Date     string
	Time     string
	Reason   string
}

// RequestAppointment inserts a pending appointment for the acting patient.
// The application-level slot check runs first; the store's uniqueness
// constraint over live statuses is the backstop, so a lost race still fails
// with ErrSlotUnavailable instead of double-booking the doctor.
func (s *Service) RequestAppointment(ctx context.Context, actor Actor, in BookingInput) (*Appointment, error) {
	if err := Authorize(&actor, RolePatient); err != nil {
		return nil, err
	}
	doctor, err := s.store.UserByID(ctx, in.DoctorID)
	if err != nil || doctor.Role != RoleDoctor {
		return nil, fmt.Errorf("%w: no such doctor", ErrNotFound)
	}
	slot, err := parseSlot(in.DoctorID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	taken, err := s.store.SlotTaken(ctx, slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotUnavailable
	}
	a := &Appointment{
		ID:        uuid.New(),
		PatientID: actor.ID,
		DoctorID:  doctor.ID,
		Date:      slot.Date,
		StartTime: slot.Time,
		Reason:    strings.TrimSpace(in.Reason),
		Status:    StatusPending,
	}
	if err := s.store.CreateAppointment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Approve sets a pending appointment to approved; only the assigned doctor may.
func (s *Service) Approve(ctx context.Context, actor Actor, id uuid.UUID) (*Appointment, error) {
	return s.doctorTransition(ctx, actor, id, StatusApproved)
}

// Reject sets a pending appointment to rejected; only the assigned doctor may.
// An approved appointment cannot be rejected afterwards.
func (s *Service) Reject(ctx context.Context, actor Actor, id uuid.UUID) (*Appointment, error) {
	return s.doctorTransition(ctx, actor, id, StatusRejected)
}

func (s *Service) doctorTransition(ctx context.Context, actor Actor, id uuid.UUID, to Status) (*Appointment, error) {
	a, err := s.store.AppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != a.DoctorID {
		return nil, ErrForbidden
	}
	if !a.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	if err := s.store.UpdateAppointmentStatus(ctx, id, []Status{StatusPending}, to); err != nil {
		return nil, err
	}
	a.Status = to
	return a, nil
}

// Cancel sets a pending or approved appointment to cancelled; only the
// initiating patient may cancel.
func (s *Service) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*Appointment, error) {
	a, err := s.store.AppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != a.PatientID {
		return nil, ErrForbidden
	}
	if !a.Status.CanTransition(StatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, StatusCancelled)
	}
	if err := s.store.UpdateAppointmentStatus(ctx, id, LiveStatuses, StatusCancelled); err != nil {
		return nil, err
	}
	a.Status = StatusCancelled
	return a, nil
}

// PatientAppointments lists the acting patient's own appointments, newest first.
func (s *Service) PatientAppointments(ctx context.Context, actor Actor) ([]Appointment, error) {
	if err := Authorize(&actor, RolePatient); err != nil {
		return nil, err
	}
	return s.store.AppointmentsByPatient(ctx, actor.ID)
}

// DoctorAppointments lists the acting doctor's inbox, soonest first.
func (s *Service) DoctorAppointments(ctx context.Context, actor Actor) ([]Appointment, error) {
	if err := Authorize(&actor, RoleDoctor); err != nil {
		return nil, err
	}
	return s.store.AppointmentsByDoctor(ctx, actor.ID)
}

func parseSlot(doctorID uuid.UUID, dateStr, timeStr string) (Slot, error) {
	if dateStr == "" || timeStr == "" {
		return Slot{}, fmt.Errorf("%w: date and time are required", ErrInvalidInput)
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, dateStr)
	}
	t, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: bad time %q", ErrInvalidInput, timeStr)
	}
	return Slot{DoctorID: doctorID, Date: date, Time: t.Format(timeLayout)}, nil
}
