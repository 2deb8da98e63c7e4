package category

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
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSlug    = errors.New("category with this slug already exists")
	ErrUnknownParent    = errors.New("parent category not found")
)

// CategoryInUseError rejects deletion of a category that products still reference.
type CategoryInUseError struct {
	Count int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("cannot delete category: %d product(s) reference it", e.Count)
}

// ProductCounter reports how many products reference a category. Implemented
// by the product repository; injected as an interface to avoid a feature cycle.
type ProductCounter interface {
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context, includeInactive bool) ([]Category, error)
	GetCategory(ctx context.Context, idOrSlug string) (*Category, error)
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryServiceImpl struct {
	repo     CategoryRepository
	products ProductCounter
}

func NewCategoryService(repo CategoryRepository, products ProductCounter) CategoryService {
	return &CategoryServiceImpl{repo: repo, products: products}
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context, includeInactive bool) ([]Category, error) {
	return s.repo.List(ctx, !includeInactive)
}

// GetCategory accepts either a hex id or a slug so storefront URLs stay readable.
func (s *CategoryServiceImpl) GetCategory(ctx context.Context, idOrSlug string) (*Category, error) {
	if _, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		c, err := s.repo.FindByID(ctx, idOrSlug)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	c, err := s.repo.FindBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, ErrDuplicateSlug
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	parent, err := s.resolveParent(ctx, req.Parent)
	if err != nil {
		return nil, err
	}

	c := &Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Image:       req.Image,
		Parent:      parent,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*Category, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
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
	if req.Image != nil {
		update["image"] = *req.Image
	}
	if req.SortOrder != nil {
		update["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.Parent != nil {
		if *req.Parent == "" {
			update["parent"] = nil
		} else {
			parent, err := s.resolveParent(ctx, req.Parent)
			if err != nil {
				return nil, err
			}
			update["parent"] = parent
		}
	}

	return s.repo.Update(ctx, existing.ID, update)
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.products.CountByCategory(ctx, existing.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &CategoryInUseError{Count: count}
	}

	return s.repo.Delete(ctx, existing.ID)
}

func (s *CategoryServiceImpl) resolveParent(ctx context.Context, parent *string) (*primitive.ObjectID, error) {
	if parent == nil || *parent == "" {
		return nil, nil
	}
	p, err := s.repo.FindByID(ctx, *parent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUnknownParent
		}
		return nil, err
	}
	return &p.ID, nil
}
