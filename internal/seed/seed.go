package seed

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/auth"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

type account struct {
	Name           string
	Email          string
	Role           scheduling.Role
	Specialization string
}

// Sample accounts for a fresh install. All share the password below; change
// them before exposing the instance.
const samplePassword = "password"

var accounts = []account{
	{Name: "Admin", Email: "admin@example.com", Role: scheduling.RoleAdmin},
	{Name: "Dr. Asha Rao", Email: "doc1@example.com", Role: scheduling.RoleDoctor, Specialization: "Cardiology"},
	{Name: "Dr. Kiran Patel", Email: "doc2@example.com", Role: scheduling.RoleDoctor, Specialization: "Dermatology"},
	{Name: "Vishnu Patient", Email: "patient@example.com", Role: scheduling.RolePatient},
}

// Run inserts the sample accounts when the users table is empty.
func Run(ctx context.Context, db *gorm.DB) error {
	var n int
	if err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM users").Scan(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := auth.HashPassword(samplePassword)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		var spec *string
		if a.Specialization != "" {
			s := a.Specialization
			spec = &s
		}
		if err := db.WithContext(ctx).Exec(`
			INSERT INTO users (id, name, email, password_hash, role, specialization)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New(), a.Name, a.Email, hash, string(a.Role), spec).Error; err != nil {
			return err
		}
		log.Printf("[seed] created %s (%s)", a.Email, a.Role)
	}
	return nil
}

// Demo registers the same sample accounts through the service. Used when the
// server runs on the in-memory store.
func Demo(ctx context.Context, svc *scheduling.Service) {
	for _, a := range accounts {
		_, err := svc.Register(ctx, scheduling.RegisterInput{
			Name:           a.Name,
			Email:          a.Email,
			Password:       samplePassword,
			Role:           string(a.Role),
			Specialization: a.Specialization,
		})
		if err != nil {
			log.Printf("[seed] %s: %v", a.Email, err)
			continue
		}
		log.Printf("[seed] created %s (%s)", a.Email, a.Role)
	}
}
