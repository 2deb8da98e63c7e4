package activity

import (
	"context"
	"time"

	common_models "greenbasket/internal/common/models"
	"greenbasket/internal/features/authz"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ListFilter narrows the admin activity listing.
type ListFilter struct {
	UserID   string
	Action   string
	Resource string
	Page     int64
}

type ActivityService interface {
	// Record persists an entry best-effort: failures are logged, never returned.
	// The fiber context supplies the client IP and user agent.
	Record(c *fiber.Ctx, actor *authz.Identity, action, resource string, resourceID *primitive.ObjectID, meta map[string]interface{})
	List(ctx context.Context, filter ListFilter) (common_models.Paged[Entry], error)
	Purge(ctx context.Context, retentionDays int) (int64, error)
}

type ActivityServiceImpl struct {
	repo   ActivityRepository
	logger *zap.Logger
}

func NewActivityService(repo ActivityRepository, logger *zap.Logger) ActivityService {
	return &ActivityServiceImpl{repo: repo, logger: logger}
}

func (s *ActivityServiceImpl) Record(c *fiber.Ctx, actor *authz.Identity, action, resource string, resourceID *primitive.ObjectID, meta map[string]interface{}) {
	if actor == nil {
		return
	}

	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["user_name"] = actor.Name
	meta["user_email"] = actor.Email

	description := ""
	if d, ok := meta["description"].(string); ok {
		description = d
	}

	entry := &Entry{
		User:        actor.ID,
		Action:      action,
		Resource:    resource,
		ResourceID:  resourceID,
		Description: description,
		IPAddress:   c.IP(),
		UserAgent:   c.Get(fiber.HeaderUserAgent),
		Metadata:    meta,
	}

	if err := s.repo.Insert(c.UserContext(), entry); err != nil {
		// Logging must never break the main flow
		s.logger.Warn("failed to record activity",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.Error(err))
	}
}

func (s *ActivityServiceImpl) List(ctx context.Context, filter ListFilter) (common_models.Paged[Entry], error) {
	query := bson.M{}
	if filter.UserID != "" {
		if oid, err := primitive.ObjectIDFromHex(filter.UserID); err == nil {
			query["user"] = oid
		}
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	if filter.Resource != "" {
		query["resource"] = filter.Resource
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	entries, total, err := s.repo.List(ctx, query, page, common_models.AdminPageSize)
	if err != nil {
		return common_models.Paged[Entry]{}, err
	}
	return common_models.NewPaged(entries, page, total, common_models.AdminPageSize), nil
}

func (s *ActivityServiceImpl) Purge(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.repo.PurgeOlderThan(ctx, cutoff)
}
