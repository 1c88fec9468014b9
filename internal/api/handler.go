package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/auth"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/cache"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/config"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

type Handler struct {
	Svc   *scheduling.Service
	Cfg   *config.Config
	Cache *cache.TTL
}

func New(svc *scheduling.Service, cfg *config.Config, c *cache.TTL) *Handler {
	return &Handler{Svc: svc, Cfg: cfg, Cache: c}
}

// actorFrom rebuilds the acting identity from the JWT claims the auth
// middleware stored on the context. A zero Actor fails Authorize downstream.
func actorFrom(r *http.Request) scheduling.Actor {
	c := auth.ClaimsFrom(r.Context())
	if c == nil {
		return scheduling.Actor{}
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return scheduling.Actor{}
	}
	return scheduling.Actor{ID: id, Role: scheduling.Role(c.Role)}
}

type UserInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

func userInfo(u *scheduling.User) UserInfo {
	return UserInfo{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		Specialization: u.Specialization,
	}
}

type AppointmentInfo struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func appointmentInfo(a *scheduling.Appointment) AppointmentInfo {
	return AppointmentInfo{
		ID:        a.ID.String(),
		PatientID: a.PatientID.String(),
		DoctorID:  a.DoctorID.String(),
		Date:      a.Date.Format("2006-01-02"),
		Time:      a.StartTime,
		Reason:    a.Reason,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	}
}

func appointmentInfos(list []scheduling.Appointment) []AppointmentInfo {
	out := make([]AppointmentInfo, len(list))
	for i := range list {
		out[i] = appointmentInfo(&list[i])
	}
	return out
}
