package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/auth"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/cache"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/config"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/middleware"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

var testSecret = []byte("test-secret-that-is-long-enough!!")

// newTestRouter wires the handler into the same route table the server uses.
func newTestRouter(t *testing.T) (*mux.Router, *scheduling.Service) {
	t.Helper()
	svc := scheduling.NewService(scheduling.NewMemoryStore())
	svc.SetHashPassword(
		func(plain string) (string, error) { return "fake:" + plain, nil },
		func(hash, plain string) bool { return hash == "fake:"+plain },
	)
	cfg := &config.Config{JWTSecret: testSecret, TokenTTL: time.Hour}
	h := New(svc, cfg, cache.New(time.Minute))

	r := mux.NewRouter()
	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	public.HandleFunc("/doctors", h.Doctors).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuthMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/me", h.Me).Methods(http.MethodGet)

	patient := middleware.RequireRole(string(scheduling.RolePatient))
	protected.Handle("/appointments", patient(http.HandlerFunc(h.Book))).Methods(http.MethodPost)
	protected.Handle("/me/appointments", patient(http.HandlerFunc(h.MyAppointments))).Methods(http.MethodGet)
	protected.Handle("/appointments/{id}/cancel", patient(http.HandlerFunc(h.CancelAppointment))).Methods(http.MethodPost)
	protected.Handle("/availability", patient(http.HandlerFunc(h.Availability))).Methods(http.MethodGet)

	doctor := middleware.RequireRole(string(scheduling.RoleDoctor))
	protected.Handle("/doctor/appointments", doctor(http.HandlerFunc(h.DoctorAppointments))).Methods(http.MethodGet)
	protected.Handle("/appointments/{id}/approve", doctor(http.HandlerFunc(h.Approve))).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/reject", doctor(http.HandlerFunc(h.Reject))).Methods(http.MethodPost)

	admin := middleware.RequireRole(string(scheduling.RoleAdmin))
	protected.Handle("/admin/dashboard", admin(http.HandlerFunc(h.Dashboard))).Methods(http.MethodGet)
	protected.Handle("/admin/users/{role}", admin(http.HandlerFunc(h.UsersByRole))).Methods(http.MethodGet)

	return r, svc
}

func register(t *testing.T, svc *scheduling.Service, name, email, role string) (*scheduling.User, string) {
	t.Helper()
	spec := ""
	if role == "doctor" {
		spec = "Cardiology"
	}
	u, err := svc.Register(context.Background(), scheduling.RegisterInput{
		Name: name, Email: email, Password: "longenough", Role: role, Specialization: spec,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	tok, err := auth.BuildJWT(testSecret, u.ID.String(), string(u.Role), time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return u, tok
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name: "Pat", Email: "pat@example.com", Password: "longenough",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	info := decode[UserInfo](t, w)
	if info.Role != "patient" || info.Email != "pat@example.com" {
		t.Errorf("got %+v", info)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name: "Pat2", Email: "pat@example.com", Password: "longenough",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name: "Bad", Email: "not-an-email", Password: "longenough",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad email: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email: "pat@example.com", Password: "longenough",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	resp := decode[LoginResponse](t, w)
	if resp.Token == "" || resp.User.Email != "pat@example.com" {
		t.Errorf("got %+v", resp)
	}

	w = doJSON(t, r, http.MethodGet, "/api/me", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d", w.Code)
	}
	me := decode[UserInfo](t, w)
	if me.ID != info.ID {
		t.Errorf("me: got %+v", me)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email: "pat@example.com", Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login: %d", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := doJSON(t, r, http.MethodGet, "/api/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/me", "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: %d", w.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	r, svc := newTestRouter(t)
	doc, docTok := register(t, svc, "Doc", "doc@example.com", "doctor")
	_, patTok := register(t, svc, "Pat", "pat@example.com", "patient")
	_, pat2Tok := register(t, svc, "Pat2", "pat2@example.com", "patient")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", patTok, BookRequest{
		DoctorID: doc.ID.String(), Date: "2026-09-10", Time: "10:00", Reason: "checkup",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}
	appt := decode[AppointmentInfo](t, w)
	if appt.Status != "pending" || appt.Time != "10:00" {
		t.Errorf("got %+v", appt)
	}

	// Same slot for another patient conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/appointments", pat2Tok, BookRequest{
		DoctorID: doc.ID.String(), Date: "2026-09-10", Time: "10:00",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("double book: %d", w.Code)
	}

	// Availability reflects the held slot.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/availability?doctor_id=%s&date=2026-09-10&time=10:00", doc.ID), patTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability: %d", w.Code)
	}
	if avail := decode[AvailabilityResponse](t, w); avail.Available {
		t.Errorf("slot should be taken: %+v", avail)
	}

	// Doctor sees it, approves it.
	w = doJSON(t, r, http.MethodGet, "/api/doctor/appointments", docTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("inbox: %d", w.Code)
	}
	if inbox := decode[[]AppointmentInfo](t, w); len(inbox) != 1 || inbox[0].ID != appt.ID {
		t.Errorf("inbox: %+v", inbox)
	}
	w = doJSON(t, r, http.MethodPost, "/api/appointments/"+appt.ID+"/approve", docTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: %d %s", w.Code, w.Body.String())
	}
	if got := decode[AppointmentInfo](t, w); got.Status != "approved" {
		t.Errorf("got %+v", got)
	}

	// Approving again conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/appointments/"+appt.ID+"/approve", docTok, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("re-approve: %d", w.Code)
	}

	// The patient cancels, freeing the slot.
	w = doJSON(t, r, http.MethodPost, "/api/appointments/"+appt.ID+"/cancel", patTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/appointments", pat2Tok, BookRequest{
		DoctorID: doc.ID.String(), Date: "2026-09-10", Time: "10:00",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("rebook after cancel: %d %s", w.Code, w.Body.String())
	}
}

func TestRoleGates(t *testing.T) {
	r, svc := newTestRouter(t)
	doc, docTok := register(t, svc, "Doc", "doc@example.com", "doctor")
	_, patTok := register(t, svc, "Pat", "pat@example.com", "patient")

	// Doctors cannot book; patients cannot read the doctor inbox or admin pages.
	w := doJSON(t, r, http.MethodPost, "/api/appointments", docTok, BookRequest{
		DoctorID: doc.ID.String(), Date: "2026-09-10", Time: "10:00",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("doctor booking: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/doctor/appointments", patTok, nil); w.Code != http.StatusForbidden {
		t.Errorf("patient inbox: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/admin/dashboard", patTok, nil); w.Code != http.StatusForbidden {
		t.Errorf("patient dashboard: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/admin/users/doctor", docTok, nil); w.Code != http.StatusForbidden {
		t.Errorf("doctor user listing: %d", w.Code)
	}
}

func TestWrongDoctorCannotDecide(t *testing.T) {
	r, svc := newTestRouter(t)
	doc, _ := register(t, svc, "Doc", "doc@example.com", "doctor")
	_, otherTok := register(t, svc, "Other", "other@example.com", "doctor")
	_, patTok := register(t, svc, "Pat", "pat@example.com", "patient")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", patTok, BookRequest{
		DoctorID: doc.ID.String(), Date: "2026-09-10", Time: "10:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Code)
	}
	appt := decode[AppointmentInfo](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/appointments/"+appt.ID+"/reject", otherTok, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("other doctor reject: %d", w.Code)
	}
}

func TestDoctorsDirectoryCache(t *testing.T) {
	r, svc := newTestRouter(t)
	register(t, svc, "Dr. Asha Rao", "doc1@example.com", "doctor")

	w := doJSON(t, r, http.MethodGet, "/api/doctors", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("doctors: %d", w.Code)
	}
	if w.Header().Get("X-Cache") == "HIT" {
		t.Error("first read should miss")
	}
	dir := decode[DoctorsResponse](t, w)
	if len(dir.Doctors) != 1 || dir.Doctors[0].Specialization != "Cardiology" {
		t.Errorf("got %+v", dir)
	}
	if len(dir.Specializations) != 1 || dir.Specializations[0] != "Cardiology" {
		t.Errorf("specializations: %+v", dir.Specializations)
	}

	w = doJSON(t, r, http.MethodGet, "/api/doctors", "", nil)
	if w.Header().Get("X-Cache") != "HIT" {
		t.Error("second read should hit the cache")
	}

	// Registering a doctor over HTTP invalidates the cached directory.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name: "Dr. Kiran Patel", Email: "doc2@example.com", Password: "longenough",
		Role: "doctor", Specialization: "Dermatology",
	})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/doctors", "", nil)
	got := decode[DoctorsResponse](t, w)
	if len(got.Doctors) != 2 || len(got.Specializations) != 2 {
		t.Errorf("after invalidation: %+v", got)
	}
	if got.Specializations[0] != "Cardiology" || got.Specializations[1] != "Dermatology" {
		t.Errorf("specializations not sorted: %+v", got.Specializations)
	}
}

func TestAdminEndpoints(t *testing.T) {
	r, svc := newTestRouter(t)
	_, adminTok := register(t, svc, "Admin", "admin@example.com", "admin")
	doc, _ := register(t, svc, "Doc", "doc@example.com", "doctor")
	_, patTok := register(t, svc, "Pat", "pat@example.com", "patient")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", patTok, BookRequest{
		DoctorID: doc.ID.String(), Date: "2026-09-10", Time: "10:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/dashboard", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}
	dash := decode[DashboardResponse](t, w)
	if dash.Doctors != 1 || dash.Patients != 1 || dash.Appointments["pending"] != 1 {
		t.Errorf("got %+v", dash)
	}
	if _, ok := dash.Appointments["cancelled"]; !ok {
		t.Error("zero statuses should be listed explicitly")
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/users/patient", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("users: %d", w.Code)
	}
	if users := decode[[]UserInfo](t, w); len(users) != 1 || users[0].Email != "pat@example.com" {
		t.Errorf("got %+v", users)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/users/admin", adminTok, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("listing admins: %d", w.Code)
	}
}

func TestPagination(t *testing.T) {
	r, svc := newTestRouter(t)
	doc, _ := register(t, svc, "Doc", "doc@example.com", "doctor")
	_, patTok := register(t, svc, "Pat", "pat@example.com", "patient")

	for _, at := range []string{"09:00", "10:00", "11:00"} {
		w := doJSON(t, r, http.MethodPost, "/api/appointments", patTok, BookRequest{
			DoctorID: doc.ID.String(), Date: "2026-09-10", Time: at,
		})
		if w.Code != http.StatusCreated {
			t.Fatal(w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/me/appointments?limit=2", patTok, nil)
	if got := decode[[]AppointmentInfo](t, w); len(got) != 2 {
		t.Errorf("limit=2: got %d items", len(got))
	}
	w = doJSON(t, r, http.MethodGet, "/api/me/appointments?limit=2&offset=2", patTok, nil)
	if got := decode[[]AppointmentInfo](t, w); len(got) != 1 {
		t.Errorf("offset=2: got %d items", len(got))
	}
	w = doJSON(t, r, http.MethodGet, "/api/me/appointments?offset=99", patTok, nil)
	if got := decode[[]AppointmentInfo](t, w); len(got) != 0 {
		t.Errorf("offset past end: got %d items", len(got))
	}
}
