package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/crestline/origination-backend/internal/config"
	"github.com/crestline/origination-backend/internal/data/repos"
	"github.com/crestline/origination-backend/internal/data/repos/testutil"
	"github.com/crestline/origination-backend/internal/requestdata"
	"github.com/crestline/origination-backend/internal/services"
)

func newAuthService(t *testing.T) services.AuthService {
	t.Helper()
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	log := testutil.Logger(t)
	return services.NewAuthService(
		config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLSecs: 3600},
		log,
		repos.NewStaffRepo(tx, log),
	)
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	staff, err := auth.CreateStaff(ctx, "officer@example.com", "correct-horse", "Test Officer", "")
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if staff.Role != "officer" {
		t.Errorf("default role = %q", staff.Role)
	}

	token, got, err := auth.Login(ctx, "officer@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != staff.ID {
		t.Error("login returned wrong staff")
	}

	authed, err := auth.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.StaffID != staff.ID {
		t.Fatalf("request data = %+v", rd)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	if _, err := auth.CreateStaff(ctx, "officer@example.com", "correct-horse", "Test Officer", ""); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}

	if _, _, err := auth.Login(ctx, "officer@example.com", "wrong"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, _, err := auth.Login(ctx, "nobody@example.com", "whatever"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v", err)
	}
	if _, err := auth.SetContextFromToken(ctx, "not-a-token"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("garbage token error = %v", err)
	}
}
