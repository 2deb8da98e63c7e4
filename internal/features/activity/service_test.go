package activity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greenbasket/internal/features/authz"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type captureActivityRepo struct {
	last *Entry
}

func (r *captureActivityRepo) Insert(ctx context.Context, entry *Entry) error {
	r.last = entry
	return nil
}

func (r *captureActivityRepo) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]Entry, int64, error) {
	return nil, 0, nil
}

func (r *captureActivityRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (r *captureActivityRepo) EnsureIndexes(ctx context.Context) error { return nil }

func TestRecordCapturesRequestDetails(t *testing.T) {
	repo := &captureActivityRepo{}
	svc := NewActivityService(repo, zap.NewNop())

	actor := &authz.Identity{
		ID:    primitive.NewObjectID(),
		Name:  "Priya",
		Email: "priya@example.com",
	}
	resourceID := primitive.NewObjectID()

	app := fiber.New()
	app.Post("/orders", func(c *fiber.Ctx) error {
		svc.Record(c, actor, "order.created", "Order", &resourceID,
			map[string]interface{}{"description": "placed an order", "total": 42.5})
		return c.SendStatus(fiber.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("User-Agent", "storefront-web/2.1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	entry := repo.last
	if entry == nil {
		t.Fatal("expected an entry to be inserted")
	}
	if entry.User != actor.ID {
		t.Errorf("expected user %s, got %s", actor.ID.Hex(), entry.User.Hex())
	}
	if entry.Action != "order.created" || entry.Resource != "Order" {
		t.Errorf("unexpected action/resource: %s %s", entry.Action, entry.Resource)
	}
	if entry.ResourceID == nil || *entry.ResourceID != resourceID {
		t.Error("expected resource id to be carried through")
	}
	if entry.Description != "placed an order" {
		t.Errorf("expected description from metadata, got %q", entry.Description)
	}
	if entry.IPAddress == "" {
		t.Error("expected client IP to be recorded")
	}
	if entry.UserAgent != "storefront-web/2.1" {
		t.Errorf("expected user agent header, got %q", entry.UserAgent)
	}
	if entry.Metadata["user_name"] != "Priya" || entry.Metadata["user_email"] != "priya@example.com" {
		t.Errorf("expected actor snapshot in metadata, got %v", entry.Metadata)
	}
}

func TestRecordSkipsAnonymous(t *testing.T) {
	repo := &captureActivityRepo{}
	svc := NewActivityService(repo, zap.NewNop())

	app := fiber.New()
	app.Get("/ping", func(c *fiber.Ctx) error {
		svc.Record(c, nil, "user.seen", "User", nil, nil)
		return c.SendStatus(fiber.StatusOK)
	})

	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil)); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if repo.last != nil {
		t.Error("expected no entry for a nil actor")
	}
}
