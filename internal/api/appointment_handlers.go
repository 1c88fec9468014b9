package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

type BookRequest struct {
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
}

// Book requests a new pending appointment for the acting patient.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid doctor_id"})
		return
	}
	a, err := h.Svc.RequestAppointment(r.Context(), actorFrom(r), scheduling.BookingInput{
		DoctorID: doctorID,
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appointmentInfo(a))
}

// MyAppointments lists the acting patient's appointments, newest first.
func (h *Handler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.PatientAppointments(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	limit, offset := ParseLimitOffset(r)
	writeJSON(w, http.StatusOK, pageOf(appointmentInfos(list), limit, offset))
}

// CancelAppointment cancels one of the acting patient's live appointments.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid appointment id"})
		return
	}
	a, err := h.Svc.Cancel(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointmentInfo(a))
}

type AvailabilityResponse struct {
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Availability reports whether a (doctor, date, time) slot is free. The answer
// is advisory: booking re-checks and the store constraint is the last word.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doctorID, err := uuid.Parse(q.Get("doctor_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid doctor_id"})
		return
	}
	date, at := q.Get("date"), q.Get("time")
	taken, err := h.Svc.IsSlotTaken(r.Context(), doctorID, date, at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AvailabilityResponse{
		DoctorID:  doctorID.String(),
		Date:      date,
		Time:      at,
		Available: !taken,
	})
}

func pageOf[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
