package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

type DashboardResponse struct {
	Doctors      int            `json:"doctors"`
	Patients     int            `json:"patients"`
	Appointments map[string]int `json:"appointments"`
}

// Dashboard returns the admin aggregates: user counts per role and
// appointment counts per status. Statuses with zero appointments are present
// with an explicit 0 so the client can render a stable set of cards.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Svc.Dashboard(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	byStatus := make(map[string]int, 4)
	for _, st := range []scheduling.Status{
		scheduling.StatusPending, scheduling.StatusApproved,
		scheduling.StatusRejected, scheduling.StatusCancelled,
	} {
		byStatus[string(st)] = counts.Appointments[st]
	}
	writeJSON(w, http.StatusOK, DashboardResponse{
		Doctors:      counts.Doctors,
		Patients:     counts.Patients,
		Appointments: byStatus,
	})
}

// UsersByRole is the admin manage-users listing; role is "doctor" or "patient".
func (h *Handler) UsersByRole(w http.ResponseWriter, r *http.Request) {
	role := scheduling.Role(mux.Vars(r)["role"])
	users, err := h.Svc.ListByRole(r.Context(), actorFrom(r), role)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]UserInfo, len(users))
	for i := range users {
		out[i] = userInfo(&users[i])
	}
	limit, offset := ParseLimitOffset(r)
	writeJSON(w, http.StatusOK, pageOf(out, limit, offset))
}
