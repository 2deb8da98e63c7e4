package brand

import (
	"context"
	"errors"
	"fmt"

	"greenbasket/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrBrandNotFound = errors.New("brand not found")
	ErrDuplicateSlug = errors.New("brand with this slug already exists")
)

type BrandInUseError struct {
	Count int64
}

func (e *BrandInUseError) Error() string {
	return fmt.Sprintf("cannot delete brand: %d product(s) reference it", e.Count)
}

// ProductCounter reports how many products reference a brand.
type ProductCounter interface {
	CountByBrand(ctx context.Context, brandID primitive.ObjectID) (int64, error)
}

type BrandService interface {
	ListBrands(ctx context.Context, includeInactive bool) ([]Brand, error)
	GetBrand(ctx context.Context, idOrSlug string) (*Brand, error)
	CreateBrand(ctx context.Context, req *CreateBrandRequest) (*Brand, error)
	UpdateBrand(ctx context.Context, id string, req *UpdateBrandRequest) (*Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}

type BrandServiceImpl struct {
	repo     BrandRepository
	products ProductCounter
}

func NewBrandService(repo BrandRepository, products ProductCounter) BrandService {
	return &BrandServiceImpl{repo: repo, products: products}
}

func (s *BrandServiceImpl) ListBrands(ctx context.Context, includeInactive bool) ([]Brand, error) {
	return s.repo.List(ctx, !includeInactive)
}

func (s *BrandServiceImpl) GetBrand(ctx context.Context, idOrSlug string) (*Brand, error) {
	if _, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		b, err := s.repo.FindByID(ctx, idOrSlug)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	b, err := s.repo.FindBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BrandServiceImpl) CreateBrand(ctx context.Context, req *CreateBrandRequest) (*Brand, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, ErrDuplicateSlug
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	b := &Brand{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Logo:        req.Logo,
		Website:     req.Website,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BrandServiceImpl) UpdateBrand(ctx context.Context, id string, req *UpdateBrandRequest) (*Brand, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Slug != nil {
		update["slug"] = *req.Slug
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Logo != nil {
		update["logo"] = *req.Logo
	}
	if req.Website != nil {
		update["website"] = *req.Website
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}

	return s.repo.Update(ctx, existing.ID, update)
}

func (s *BrandServiceImpl) DeleteBrand(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBrandNotFound
		}
		return err
	}

	count, err := s.products.CountByBrand(ctx, existing.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &BrandInUseError{Count: count}
	}

	return s.repo.Delete(ctx, existing.ID)
}
