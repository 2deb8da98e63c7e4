package certification

import (
	"context"
	"errors"

	"greenbasket/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrCertificationNotFound = errors.New("certification not found")

type CertificationService interface {
	List(ctx context.Context, includeInactive bool) ([]Certification, error)
	Get(ctx context.Context, id string) (*Certification, error)
	Create(ctx context.Context, req *UpsertCertificationRequest) (*Certification, error)
	Update(ctx context.Context, id string, req *UpsertCertificationRequest) (*Certification, error)
	Delete(ctx context.Context, id string) error
}

type CertificationServiceImpl struct {
	repo CertificationRepository
}

func NewCertificationService(repo CertificationRepository) CertificationService {
	return &CertificationServiceImpl{repo: repo}
}

func (s *CertificationServiceImpl) List(ctx context.Context, includeInactive bool) ([]Certification, error) {
	return s.repo.List(ctx, !includeInactive)
}

func (s *CertificationServiceImpl) Get(ctx context.Context, id string) (*Certification, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCertificationNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CertificationServiceImpl) Create(ctx context.Context, req *UpsertCertificationRequest) (*Certification, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	c := &Certification{
		Name:        req.Name,
		Slug:        slug,
		Issuer:      req.Issuer,
		Logo:        req.Logo,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CertificationServiceImpl) Update(ctx context.Context, id string, req *UpsertCertificationRequest) (*Certification, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Slug != "" {
		update["slug"] = req.Slug
	}
	if req.Issuer != "" {
		update["issuer"] = req.Issuer
	}
	if req.Logo != "" {
		update["logo"] = req.Logo
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}

	return s.repo.Update(ctx, existing.ID, update)
}

func (s *CertificationServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, existing.ID)
}
