package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

func TestUserService_Create_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &captureSink{}, testLogger())

	if _, err := svc.Create(context.Background(), managerP, ports.CreateUserInput{
		Username: "new", Password: "pass", Role: domain.RoleManager,
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for manager, got %v", err)
	}

	created, err := svc.Create(context.Background(), adminP, ports.CreateUserInput{
		Username: "petr", Password: "pass123", Role: domain.RoleDesigner, DesignerType: domain.DesignerExternal, Name: "Пётр",
	})
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if created.PasswordHash == "pass123" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &captureSink{}, testLogger())

	if _, err := svc.Create(context.Background(), adminP, ports.CreateUserInput{Username: "x", Password: "p", Role: "client"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("portal role must be rejected for staff accounts, got %v", err)
	}
	if _, err := svc.Create(context.Background(), adminP, ports.CreateUserInput{Username: "", Password: "p", Role: domain.RoleAdmin}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	repo.add("petr", "pass", domain.RoleManager, true)
	svc := NewUserService(repo, &captureSink{}, testLogger())

	if _, err := svc.Create(context.Background(), adminP, ports.CreateUserInput{
		Username: "petr", Password: "pass", Role: domain.RoleManager,
	}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Deactivate(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.add("petr", "pass", domain.RoleManager, true)
	svc := NewUserService(repo, &captureSink{}, testLogger())

	if err := svc.Deactivate(context.Background(), adminP, u.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	stored, err := repo.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("record hard-deleted: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected IsActive=false")
	}
}
