package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	common_models "greenbasket/internal/common/models"
	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/authz"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubAuthService struct {
	registered *AuthResponse
}

func (s *stubAuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	return s.registered, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *LoginRequest, ip string) (*AuthResponse, error) {
	return nil, ErrInvalidCredentials
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*Profile, error) {
	return nil, ErrInvalidCredentials
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	return nil, ErrInvalidCredentials
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	return ErrInvalidCredentials
}

func (s *stubAuthService) LoadIdentity(ctx context.Context, userID string) (*authz.Identity, error) {
	return nil, ErrInvalidCredentials
}

func (s *stubAuthService) RecordSeen(ctx context.Context, userID, ip string) error { return nil }

type recordedCall struct {
	actor  *authz.Identity
	action string
}

type spyActivityService struct {
	calls []recordedCall
}

func (s *spyActivityService) Record(c *fiber.Ctx, actor *authz.Identity, action, resource string, resourceID *primitive.ObjectID, meta map[string]interface{}) {
	s.calls = append(s.calls, recordedCall{actor: actor, action: action})
}

func (s *spyActivityService) List(ctx context.Context, filter activity.ListFilter) (common_models.Paged[activity.Entry], error) {
	return common_models.Paged[activity.Entry]{}, nil
}

func (s *spyActivityService) Purge(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}

func TestRegisterLogsNewAccount(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := &stubAuthService{
		registered: &AuthResponse{
			Token: "signed",
			User:  &Profile{ID: userID.Hex(), Name: "Priya", Email: "priya@example.com"},
		},
	}
	spy := &spyActivityService{}
	ctrl := NewAuthController(svc, spy)

	app := fiber.New()
	app.Post("/api/auth/register", ctrl.Register)

	body := `{"name":"Priya","email":"priya@example.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	if len(spy.calls) != 1 {
		t.Fatalf("expected one activity record, got %d", len(spy.calls))
	}
	call := spy.calls[0]
	if call.action != "user.registered" {
		t.Errorf("expected user.registered, got %s", call.action)
	}
	if call.actor == nil {
		t.Fatal("expected the new account as actor, got nil")
	}
	if call.actor.ID != userID || call.actor.Email != "priya@example.com" {
		t.Errorf("actor does not match the created account: %+v", call.actor)
	}
}
