package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

const doctorsCacheKey = "doctors"

type DoctorsResponse struct {
	Doctors         []UserInfo `json:"doctors"`
	Specializations []string   `json:"specializations"`
}

// Doctors is the public directory of registered doctors, with the distinct
// specializations for the client's filter dropdown. The serialized response
// is cached; registration of a new doctor invalidates it.
func (h *Handler) Doctors(w http.ResponseWriter, r *http.Request) {
	if data := h.Cache.Get(doctorsCacheKey); data != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		_, _ = w.Write(data)
		return
	}
	doctors, err := h.Svc.Doctors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := DoctorsResponse{Doctors: make([]UserInfo, len(doctors)), Specializations: []string{}}
	seen := make(map[string]bool)
	for i := range doctors {
		resp.Doctors[i] = userInfo(&doctors[i])
		if s := doctors[i].Specialization; s != "" && !seen[s] {
			seen[s] = true
			resp.Specializations = append(resp.Specializations, s)
		}
	}
	sort.Strings(resp.Specializations)
	data := mustJSON(resp)
	h.Cache.Set(doctorsCacheKey, data)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// DoctorAppointments is the acting doctor's inbox, soonest first.
func (h *Handler) DoctorAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.DoctorAppointments(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	limit, offset := ParseLimitOffset(r)
	writeJSON(w, http.StatusOK, pageOf(appointmentInfos(list), limit, offset))
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.doctorDecision(w, r, h.Svc.Approve)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.doctorDecision(w, r, h.Svc.Reject)
}

func (h *Handler) doctorDecision(w http.ResponseWriter, r *http.Request,
	decide func(ctx context.Context, actor scheduling.Actor, id uuid.UUID) (*scheduling.Appointment, error)) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid appointment id"})
		return
	}
	a, err := decide(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointmentInfo(a))
}
