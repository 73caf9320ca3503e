package session

import (
	"context"
	"testing"

	"storefront/internal/domain"
	staterepo "storefront/internal/repository/state"
)

func TestLoginSetsDerivedFlag(t *testing.T) {
	svc := New(staterepo.NewMemory(), nil)
	ctx := context.Background()

	sess := svc.Login(ctx, "v1", domain.User{ID: "u1", Role: domain.RoleCustomer}, "tok123")
	if !sess.IsLoggedIn {
		t.Fatalf("expected logged-in session")
	}
	if sess.User == nil || sess.User.ID != "u1" || sess.Token != "tok123" {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestLoginOverwritesPriorSession(t *testing.T) {
	svc := New(staterepo.NewMemory(), nil)
	ctx := context.Background()

	svc.Login(ctx, "v1", domain.User{ID: "u1"}, "tok1")
	sess := svc.Login(ctx, "v1", domain.User{ID: "u2", Role: domain.RoleTechnician}, "tok2")
	if sess.User.ID != "u2" || sess.Token != "tok2" {
		t.Fatalf("expected the new identity, got %+v", sess)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	repo := staterepo.NewMemory()
	ctx := context.Background()

	New(repo, nil).Login(ctx, "v1", domain.User{ID: "u1", FirstName: "Sara"}, "tok123")

	sess := New(repo, nil).Get(ctx, "v1")
	if !sess.IsLoggedIn || sess.User == nil || sess.User.ID != "u1" {
		t.Fatalf("session did not survive restart: %+v", sess)
	}
}

func TestLogoutClearsAndStaysCleared(t *testing.T) {
	repo := staterepo.NewMemory()
	ctx := context.Background()

	svc := New(repo, nil)
	svc.Login(ctx, "v1", domain.User{ID: "u1"}, "tok123")
	sess := svc.Logout(ctx, "v1")
	if sess.IsLoggedIn || sess.User != nil || sess.Token != "" {
		t.Fatalf("logout must clear all fields: %+v", sess)
	}

	// A restart must not resurrect the prior session.
	sess = New(repo, nil).Get(ctx, "v1")
	if sess.IsLoggedIn || sess.User != nil {
		t.Fatalf("session resurrected after restart: %+v", sess)
	}
}

func TestPartialStoredSessionIsLoggedOut(t *testing.T) {
	repo := staterepo.NewMemory()
	ctx := context.Background()

	// A stored session missing its token must not present as logged in.
	stored := domain.Session{User: &domain.User{ID: "u1"}, IsLoggedIn: true}
	if err := repo.Save(ctx, "v1", staterepo.SlotAuth, stored); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sess := New(repo, nil).Get(ctx, "v1")
	if sess.IsLoggedIn {
		t.Fatalf("expected logged-out session, got %+v", sess)
	}
}
