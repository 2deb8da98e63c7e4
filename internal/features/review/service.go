package review

import (
	"context"
	"errors"
	"strings"

	"greenbasket/internal/common/models"
	"greenbasket/internal/features/authz"
	"greenbasket/internal/features/product"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrBadRating       = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	Create(ctx context.Context, identity *authz.Identity, productID string, req *CreateReviewRequest) (*Review, error)
	ListForProduct(ctx context.Context, productID string, page int64) (*models.Paged[Review], error)
	AdminList(ctx context.Context, q ListReviewsQuery) (*models.Paged[Review], error)
	SetApproved(ctx context.Context, id string, approved bool) (*Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type ReviewServiceImpl struct {
	repo     ReviewRepository
	products product.ProductRepository
	logger   *zap.Logger
}

func NewReviewService(repo ReviewRepository, products product.ProductRepository, logger *zap.Logger) ReviewService {
	return &ReviewServiceImpl{repo: repo, products: products, logger: logger}
}

func (s *ReviewServiceImpl) Create(ctx context.Context, identity *authz.Identity, productID string, req *CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrBadRating
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, product.ErrProductNotFound
	}

	if _, err := s.repo.FindByProductAndUser(ctx, p.ID, identity.ID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	rv := &Review{
		Product:    p.ID,
		User:       identity.ID,
		UserName:   identity.Name,
		Rating:     req.Rating,
		Title:      strings.TrimSpace(req.Title),
		Comment:    strings.TrimSpace(req.Comment),
		IsApproved: true,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		// The unique index catches the race between the lookup and the insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	s.refreshRating(ctx, p.ID)
	return rv, nil
}

func (s *ReviewServiceImpl) ListForProduct(ctx context.Context, productID string, page int64) (*models.Paged[Review], error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, product.ErrProductNotFound
	}
	if page < 1 {
		page = 1
	}

	filter := bson.M{"product": oid, "is_approved": true}
	reviews, total, err := s.repo.List(ctx, filter, page, models.StorePageSize)
	if err != nil {
		return nil, err
	}
	paged := models.NewPaged(reviews, page, total, models.StorePageSize)
	return &paged, nil
}

func (s *ReviewServiceImpl) AdminList(ctx context.Context, q ListReviewsQuery) (*models.Paged[Review], error) {
	filter := bson.M{}
	if q.Product != "" {
		oid, err := primitive.ObjectIDFromHex(q.Product)
		if err != nil {
			return nil, product.ErrProductNotFound
		}
		filter["product"] = oid
	}
	if q.Approved != nil {
		filter["is_approved"] = *q.Approved
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	reviews, total, err := s.repo.List(ctx, filter, page, models.AdminPageSize)
	if err != nil {
		return nil, err
	}
	paged := models.NewPaged(reviews, page, total, models.AdminPageSize)
	return &paged, nil
}

func (s *ReviewServiceImpl) SetApproved(ctx context.Context, id string, approved bool) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrReviewNotFound
	}

	rv, err := s.repo.SetApproved(ctx, oid, approved)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	s.refreshRating(ctx, rv.Product)
	return rv, nil
}

func (s *ReviewServiceImpl) DeleteReview(ctx context.Context, id string) error {
	rv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrReviewNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, rv.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrReviewNotFound
		}
		return err
	}

	s.refreshRating(ctx, rv.Product)
	return nil
}

// refreshRating recomputes the product's aggregate from approved reviews.
// Best-effort, the review write already succeeded.
func (s *ReviewServiceImpl) refreshRating(ctx context.Context, productID primitive.ObjectID) {
	avg, count, err := s.repo.RatingSummary(ctx, productID)
	if err == nil {
		_, err = s.products.Update(ctx, productID, bson.M{
			"rating_avg": avg, "rating_count": count,
		})
	}
	if err != nil {
		s.logger.Warn("failed to refresh product rating",
			zap.String("product_id", productID.Hex()), zap.Error(err))
	}
}
