package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/pkg/idx"
	"github.com/cheapdeals/shop/pkg/slogx"
)

// CatalogService manages the phone, package and bundle product variants.
type CatalogService struct {
	Store store.Store
}

// ParseProductType normalises a query value. An empty value means ALL.
func ParseProductType(s string) (domain.ProductType, error) {
	switch domain.ProductType(strings.ToUpper(strings.TrimSpace(s))) {
	case "", domain.ProductAll:
		return domain.ProductAll, nil
	case domain.ProductPhone:
		return domain.ProductPhone, nil
	case domain.ProductPackage:
		return domain.ProductPackage, nil
	case domain.ProductBundle:
		return domain.ProductBundle, nil
	default:
		return "", ErrInvalidProductType
	}
}

// List fetches products of one type, or all three tables concurrently when
// the type is ALL. The ALL listing has partial-success semantics: a failed
// table fetch is logged and contributes nothing instead of failing the whole
// request.
func (s *CatalogService) List(ctx context.Context, t domain.ProductType) ([]any, error) {
	switch t {
	case domain.ProductPhone:
		phones, err := s.Store.Phones().ListPhones(ctx)
		if err != nil {
			return nil, err
		}
		return collect(phones), nil
	case domain.ProductPackage:
		packages, err := s.Store.Packages().ListPackages(ctx)
		if err != nil {
			return nil, err
		}
		return collect(packages), nil
	case domain.ProductBundle:
		bundles, err := s.Store.Bundles().ListBundles(ctx)
		if err != nil {
			return nil, err
		}
		return collect(bundles), nil
	case domain.ProductAll:
		return s.listAll(ctx), nil
	default:
		return nil, ErrInvalidProductType
	}
}

func (s *CatalogService) listAll(ctx context.Context) []any {
	l := slogx.FromContext(ctx)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		products []any
	)

	fetch := func(name string, fn func() ([]any, error)) {
		defer wg.Done()
		items, err := fn()
		if err != nil {
			l.Warn("catalog listing degraded", "table", name, "err", err)
			return
		}
		mu.Lock()
		products = append(products, items...)
		mu.Unlock()
	}

	wg.Add(3)
	go fetch("phones", func() ([]any, error) {
		phones, err := s.Store.Phones().ListPhones(ctx)
		return collect(phones), err
	})
	go fetch("packages", func() ([]any, error) {
		packages, err := s.Store.Packages().ListPackages(ctx)
		return collect(packages), err
	})
	go fetch("bundles", func() ([]any, error) {
		bundles, err := s.Store.Bundles().ListBundles(ctx)
		return collect(bundles), err
	})
	wg.Wait()

	return products
}

// Get fetches a single product. BUNDLE reads expand items with their nested
// phone or package.
func (s *CatalogService) Get(ctx context.Context, t domain.ProductType, id string) (any, error) {
	switch t {
	case domain.ProductPhone:
		return s.Store.Phones().GetPhoneByID(ctx, id)
	case domain.ProductPackage:
		return s.Store.Packages().GetPackageByID(ctx, id)
	case domain.ProductBundle:
		return s.Store.Bundles().GetBundleByID(ctx, id)
	default:
		return nil, ErrInvalidProductType
	}
}

type PhoneInput struct {
	Name        string
	Brand       string
	Price       float64
	ImgURL      string
	Description *string
	Rating      *float64
	Stock       int
	IsActive    bool
}

func (s *CatalogService) CreatePhone(ctx context.Context, in PhoneInput) (domain.Phone, error) {
	now := time.Now().UTC()
	p := domain.Phone{
		ID:          idx.New().String(),
		Type:        domain.ProductPhone,
		Name:        in.Name,
		Brand:       in.Brand,
		Price:       in.Price,
		ImgURL:      in.ImgURL,
		Description: in.Description,
		Rating:      in.Rating,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Phones().CreatePhone(ctx, p); err != nil {
		return domain.Phone{}, err
	}
	return p, nil
}

type PackageInput struct {
	Name        string
	Description *string
	PackageType domain.PackageType
	Price       float64
	Rating      *float64
	IsActive    bool
}

func (s *CatalogService) CreatePackage(ctx context.Context, in PackageInput) (domain.Package, error) {
	if in.PackageType == "" {
		in.PackageType = domain.PackageMobile
	}

	now := time.Now().UTC()
	p := domain.Package{
		ID:          idx.New().String(),
		Type:        domain.ProductPackage,
		PackageType: in.PackageType,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Rating:      in.Rating,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Packages().CreatePackage(ctx, p); err != nil {
		return domain.Package{}, err
	}
	return p, nil
}

type BundleInput struct {
	Name        string
	Description *string
	Price       float64
	Rating      *float64
	IsActive    bool
	Items       []BundleItemInput
}

type BundleItemInput struct {
	PhoneID   *string
	PackageID *string
	Quantity  int
}

// CreateBundle writes the bundle row and its items in one transaction. Every
// item must reference an existing phone or package.
func (s *CatalogService) CreateBundle(ctx context.Context, in BundleInput) (domain.Bundle, error) {
	if len(in.Items) == 0 {
		return domain.Bundle{}, ErrInvalidBundleItem
	}
	for _, item := range in.Items {
		if item.PhoneID == nil && item.PackageID == nil {
			return domain.Bundle{}, ErrInvalidBundleItem
		}
	}

	now := time.Now().UTC()
	b := domain.Bundle{
		ID:          idx.New().String(),
		Type:        domain.ProductBundle,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Rating:      in.Rating,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Bundles().CreateBundle(ctx, b); err != nil {
			return err
		}
		for _, in := range in.Items {
			quantity := in.Quantity
			if quantity < 1 {
				quantity = 1
			}

			item := domain.BundleItem{
				ID:        idx.New().String(),
				BundleID:  b.ID,
				PhoneID:   in.PhoneID,
				PackageID: in.PackageID,
				Quantity:  quantity,
			}

			// Resolve references before inserting so a bad id surfaces
			// as not-found instead of a driver constraint error.
			if item.PhoneID != nil {
				p, err := tx.Phones().GetPhoneByID(ctx, *item.PhoneID)
				if err != nil {
					return err
				}
				item.Phone = &p
			}
			if item.PackageID != nil {
				p, err := tx.Packages().GetPackageByID(ctx, *item.PackageID)
				if err != nil {
					return err
				}
				item.Package = &p
			}

			if err := tx.Bundles().CreateBundleItem(ctx, item); err != nil {
				return err
			}
			b.BundleItems = append(b.BundleItems, item)
		}
		return nil
	})
	if err != nil {
		return domain.Bundle{}, err
	}
	return b, nil
}

// collect boxes a typed slice for the mixed product listing.
func collect[T any](items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
