package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/auth"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody(err))
		return
	}
	u, err := h.Svc.Register(r.Context(), scheduling.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		Specialization: req.Specialization,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	// A new doctor changes the public directory.
	if u.Role == scheduling.RoleDoctor {
		h.Cache.Delete(doctorsCacheKey)
	}
	writeJSON(w, http.StatusCreated, userInfo(u))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid body"}`, http.StatusBadRequest)
		return
	}
	u, err := h.Svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, err := auth.BuildJWT(h.Cfg.JWTSecret, u.ID.String(), string(u.Role), h.Cfg.TokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     tok,
		ExpiresAt: time.Now().Add(h.Cfg.TokenTTL),
		User:      userInfo(u),
	})
}

// Me returns the authenticated user's own profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	if actor.ID == uuid.Nil {
		writeError(w, scheduling.ErrUnauthenticated)
		return
	}
	u, err := h.Svc.GetUser(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userInfo(u))
}
