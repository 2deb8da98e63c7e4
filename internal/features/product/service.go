package product

import (
	"context"
	"errors"

	"greenbasket/internal/common/models"
	"greenbasket/internal/features/brand"
	"greenbasket/internal/features/category"
	"greenbasket/internal/features/certification"
	"greenbasket/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrDuplicateSlug         = errors.New("product with this slug already exists")
	ErrUnknownCategory       = errors.New("category not found")
	ErrUnknownBrand          = errors.New("brand not found")
	ErrUnknownCertification  = errors.New("one or more invalid certifications")
	ErrInvalidPrice          = errors.New("price must be greater than zero")
	ErrSalePriceAbovePrice   = errors.New("sale price must be below the regular price")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrNegativeInitialStock  = errors.New("stock cannot be negative")
)

// ProductView is a product with its references materialized for detail pages.
type ProductView struct {
	Product
	CategoryDoc       *category.Category            `json:"category_doc,omitempty"`
	BrandDoc          *brand.Brand                  `json:"brand_doc,omitempty"`
	CertificationDocs []certification.Certification `json:"certification_docs"`
}

type ProductService interface {
	Browse(ctx context.Context, q BrowseQuery) (*models.Paged[Product], error)
	GetProduct(ctx context.Context, idOrSlug string) (*ProductView, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductView, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*ProductView, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductServiceImpl struct {
	repo       ProductRepository
	categories category.CategoryRepository
	brands     brand.BrandRepository
	certs      certification.CertificationRepository
}

func NewProductService(
	repo ProductRepository,
	categories category.CategoryRepository,
	brands brand.BrandRepository,
	certs certification.CertificationRepository,
) ProductService {
	return &ProductServiceImpl{repo: repo, categories: categories, brands: brands, certs: certs}
}

// buildFilter translates a browse query into a Mongo filter. Hidden products
// are excluded unless the caller is staff.
func buildFilter(q BrowseQuery) bson.M {
	filter := bson.M{}
	if !q.ShowHidden {
		filter["is_active"] = true
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	if q.MinPrice > 0 || q.MaxPrice > 0 {
		price := bson.M{}
		if q.MinPrice > 0 {
			price["$gte"] = q.MinPrice
		}
		if q.MaxPrice > 0 {
			price["$lte"] = q.MaxPrice
		}
		filter["price"] = price
	}
	if q.Organic != nil {
		filter["is_organic"] = *q.Organic
	}
	if q.Featured != nil {
		filter["is_featured"] = *q.Featured
	}
	if q.InStock != nil && *q.InStock {
		filter["stock"] = bson.M{"$gt": 0}
	}
	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$in": q.Tags}
	}
	return filter
}

// sortSpec maps the public sort keys onto index-friendly sort documents.
func sortSpec(sort string) bson.D {
	switch sort {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	case "rating":
		return bson.D{{Key: "rating_avg", Value: -1}, {Key: "rating_count", Value: -1}}
	case "popular":
		return bson.D{{Key: "sold_count", Value: -1}}
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func (s *ProductServiceImpl) Browse(ctx context.Context, q BrowseQuery) (*models.Paged[Product], error) {
	filter := buildFilter(q)

	if q.Category != "" {
		cat, err := s.categories.FindBySlug(ctx, q.Category)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		filter["category"] = cat.ID
	}
	if q.Brand != "" {
		b, err := s.brands.FindBySlug(ctx, q.Brand)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrUnknownBrand
			}
			return nil, err
		}
		filter["brand"] = b.ID
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = models.StorePageSize
	}

	products, total, err := s.repo.List(ctx, filter, sortSpec(q.Sort), page, pageSize)
	if err != nil {
		return nil, err
	}

	paged := models.NewPaged(products, page, total, pageSize)
	return &paged, nil
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, idOrSlug string) (*ProductView, error) {
	var p *Product
	var err error

	if _, hexErr := primitive.ObjectIDFromHex(idOrSlug); hexErr == nil {
		p, err = s.repo.FindByID(ctx, idOrSlug)
	} else {
		p, err = s.repo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.resolve(ctx, p)
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductView, error) {
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if req.SalePrice > 0 && req.SalePrice >= req.Price {
		return nil, ErrSalePriceAbovePrice
	}
	if req.Stock < 0 {
		return nil, ErrNegativeInitialStock
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, ErrDuplicateSlug
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	cat, err := s.categories.FindByID(ctx, req.Category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	var brandID *primitive.ObjectID
	if req.Brand != "" {
		b, err := s.brands.FindByID(ctx, req.Brand)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrUnknownBrand
			}
			return nil, err
		}
		brandID = &b.ID
	}

	certIDs, err := s.validateCertifications(ctx, req.Certifications)
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = UnitPiece
	}
	threshold := req.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}

	p := &Product{
		Name:              req.Name,
		Slug:              slug,
		Description:       req.Description,
		Images:            req.Images,
		Category:          cat.ID,
		Brand:             brandID,
		Certifications:    certIDs,
		Price:             req.Price,
		SalePrice:         req.SalePrice,
		Unit:              unit,
		UnitValue:         req.UnitValue,
		SKU:               req.SKU,
		Stock:             req.Stock,
		LowStockThreshold: threshold,
		IsOrganic:         req.IsOrganic,
		IsFeatured:        req.IsFeatured,
		Nutrition:         req.Nutrition,
		Tags:              req.Tags,
		IsActive:          true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.resolve(ctx, p)
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*ProductView, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
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
	if req.Images != nil {
		update["images"] = req.Images
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		update["price"] = *req.Price
	}
	if req.SalePrice != nil {
		price := existing.Price
		if req.Price != nil {
			price = *req.Price
		}
		if *req.SalePrice > 0 && *req.SalePrice >= price {
			return nil, ErrSalePriceAbovePrice
		}
		update["sale_price"] = *req.SalePrice
	}
	if req.Unit != nil {
		update["unit"] = *req.Unit
	}
	if req.UnitValue != nil {
		update["unit_value"] = *req.UnitValue
	}
	if req.SKU != nil {
		update["sku"] = *req.SKU
	}
	if req.LowStockThreshold != nil {
		update["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.IsOrganic != nil {
		update["is_organic"] = *req.IsOrganic
	}
	if req.IsFeatured != nil {
		update["is_featured"] = *req.IsFeatured
	}
	if req.Nutrition != nil {
		update["nutrition"] = *req.Nutrition
	}
	if req.Tags != nil {
		update["tags"] = req.Tags
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.Category != nil {
		cat, err := s.categories.FindByID(ctx, *req.Category)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		update["category"] = cat.ID
	}
	if req.Brand != nil {
		if *req.Brand == "" {
			update["brand"] = nil
		} else {
			b, err := s.brands.FindByID(ctx, *req.Brand)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, ErrUnknownBrand
				}
				return nil, err
			}
			update["brand"] = b.ID
		}
	}
	if req.Certifications != nil {
		certIDs, err := s.validateCertifications(ctx, req.Certifications)
		if err != nil {
			return nil, err
		}
		update["certifications"] = certIDs
	}

	updated, err := s.repo.Update(ctx, existing.ID, update)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, updated)
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, existing.ID)
}

func (s *ProductServiceImpl) validateCertifications(ctx context.Context, ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrUnknownCertification
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return oids, nil
	}

	certs, err := s.certs.FindByIDs(ctx, oids)
	if err != nil {
		return nil, err
	}
	if len(certs) != len(oids) {
		return nil, ErrUnknownCertification
	}
	return oids, nil
}

func (s *ProductServiceImpl) resolve(ctx context.Context, p *Product) (*ProductView, error) {
	view := &ProductView{Product: *p, CertificationDocs: []certification.Certification{}}

	cat, err := s.categories.FindByID(ctx, p.Category.Hex())
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	view.CategoryDoc = cat

	if p.Brand != nil {
		b, err := s.brands.FindByID(ctx, p.Brand.Hex())
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		view.BrandDoc = b
	}

	if len(p.Certifications) > 0 {
		certs, err := s.certs.FindByIDs(ctx, p.Certifications)
		if err != nil {
			return nil, err
		}
		view.CertificationDocs = certs
	}
	return view, nil
}
