package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/internal/shop/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Store: newTestStore(t)}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestParseProductType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    domain.ProductType
		wantErr bool
	}{
		{"", domain.ProductAll, false},
		{"ALL", domain.ProductAll, false},
		{"phone", domain.ProductPhone, false},
		{" Package ", domain.ProductPackage, false},
		{"BUNDLE", domain.ProductBundle, false},
		{"laptop", "", true},
	}
	for _, tt := range tests {
		got, err := ParseProductType(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidProductType, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		require.Equal(t, tt.want, got)
	}
}

func TestCreateAndGetPhone(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreatePhone(ctx, PhoneInput{
		Name:        "Galaxy Fold 7",
		Brand:       "Samsung",
		Price:       999.99,
		ImgURL:      "https://img.example/fold7.png",
		Description: strPtr("Foldable flagship"),
		Rating:      floatPtr(4.8),
		Stock:       50,
		IsActive:    true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, domain.ProductPhone, created.Type)

	got, err := svc.Get(ctx, domain.ProductPhone, created.ID)
	require.NoError(t, err)

	phone, ok := got.(domain.Phone)
	require.True(t, ok)
	require.Equal(t, "Galaxy Fold 7", phone.Name)
	require.NotNil(t, phone.Rating)
	require.InDelta(t, 4.8, *phone.Rating, 0.001)
}

func TestCreatePackageDefaultsType(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreatePackage(ctx, PackageInput{
		Name:     "Unlimited Data Plan",
		Price:    49.99,
		IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, domain.PackageMobile, created.PackageType)

	got, err := svc.Get(ctx, domain.ProductPackage, created.ID)
	require.NoError(t, err)

	pkg, ok := got.(domain.Package)
	require.True(t, ok)
	require.Equal(t, domain.PackageMobile, pkg.PackageType)
}

func TestGetUnknownProduct(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, domain.ProductPhone, "missing-id")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Get(ctx, "LAPTOP", "whatever")
	require.ErrorIs(t, err, ErrInvalidProductType)
}

func TestCreateBundle(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	phone, err := svc.CreatePhone(ctx, PhoneInput{
		Name: "Pixel 10", Brand: "Google", Price: 899, ImgURL: "https://img.example/p10.png",
		Stock: 10, IsActive: true,
	})
	require.NoError(t, err)

	pkg, err := svc.CreatePackage(ctx, PackageInput{
		Name: "Broadband 500", PackageType: domain.PackageBroadband, Price: 79.95, IsActive: true,
	})
	require.NoError(t, err)

	bundle, err := svc.CreateBundle(ctx, BundleInput{
		Name:     "Starter Bundle",
		Price:    899.95,
		IsActive: true,
		Items: []BundleItemInput{
			{PhoneID: &phone.ID, Quantity: 2},
			{PackageID: &pkg.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, bundle.BundleItems, 2)

	got, err := svc.Get(ctx, domain.ProductBundle, bundle.ID)
	require.NoError(t, err)

	fetched, ok := got.(domain.Bundle)
	require.True(t, ok)
	require.Len(t, fetched.BundleItems, 2)

	// Items carry the expanded phone/package.
	for _, item := range fetched.BundleItems {
		if item.PhoneID != nil {
			require.NotNil(t, item.Phone)
			require.Equal(t, "Pixel 10", item.Phone.Name)
			require.Equal(t, 2, item.Quantity)
		}
		if item.PackageID != nil {
			require.NotNil(t, item.Package)
			require.Equal(t, domain.PackageBroadband, item.Package.PackageType)
			require.Equal(t, 1, item.Quantity, "quantity defaults to 1")
		}
	}
}

func TestCreateBundleValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateBundle(ctx, BundleInput{Name: "Empty", Price: 10})
	require.ErrorIs(t, err, ErrInvalidBundleItem)

	_, err = svc.CreateBundle(ctx, BundleInput{
		Name:  "Dangling",
		Price: 10,
		Items: []BundleItemInput{{Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrInvalidBundleItem)

	// A bad reference rolls the whole bundle back.
	missing := "no-such-phone"
	_, err = svc.CreateBundle(ctx, BundleInput{
		Name:  "Broken",
		Price: 10,
		Items: []BundleItemInput{{PhoneID: &missing}},
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := svc.List(ctx, domain.ProductBundle)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestListAllCombinesTables(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	phone, err := svc.CreatePhone(ctx, PhoneInput{
		Name: "Pixel 10", Brand: "Google", Price: 899, ImgURL: "https://img.example/p10.png",
		Stock: 5, IsActive: true,
	})
	require.NoError(t, err)

	_, err = svc.CreatePackage(ctx, PackageInput{Name: "Tablet Plan", PackageType: domain.PackageTablet, Price: 25, IsActive: true})
	require.NoError(t, err)

	_, err = svc.CreateBundle(ctx, BundleInput{
		Name: "Solo", Price: 899,
		Items: []BundleItemInput{{PhoneID: &phone.ID}},
	})
	require.NoError(t, err)

	products, err := svc.List(ctx, domain.ProductAll)
	require.NoError(t, err)
	require.Len(t, products, 3)

	types := map[domain.ProductType]int{}
	for _, p := range products {
		switch v := p.(type) {
		case domain.Phone:
			types[v.Type]++
		case domain.Package:
			types[v.Type]++
		case domain.Bundle:
			types[v.Type]++
		default:
			t.Fatalf("unexpected product %T", p)
		}
	}
	require.Equal(t, 1, types[domain.ProductPhone])
	require.Equal(t, 1, types[domain.ProductPackage])
	require.Equal(t, 1, types[domain.ProductBundle])
}

func TestListAllDegradesWhenTableBroken(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "catalog.db")

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	svc := &CatalogService{Store: st}
	ctx := context.Background()

	_, err = svc.CreatePhone(ctx, PhoneInput{
		Name: "Pixel 10", Brand: "Google", Price: 899, ImgURL: "https://img.example/p10.png",
		Stock: 5, IsActive: true,
	})
	require.NoError(t, err)

	_, err = svc.CreatePackage(ctx, PackageInput{Name: "Tablet Plan", Price: 25, IsActive: true})
	require.NoError(t, err)

	// Break the bundles table behind the store's back.
	raw, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer raw.Close()
	_, err = raw.Exec(`DROP TABLE bundle_items`)
	require.NoError(t, err)
	_, err = raw.Exec(`DROP TABLE bundles`)
	require.NoError(t, err)

	// The combined listing keeps serving the surviving tables.
	products, err := svc.List(ctx, domain.ProductAll)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		switch p.(type) {
		case domain.Phone, domain.Package:
		default:
			t.Fatalf("unexpected product %T", p)
		}
	}

	// A direct listing of the broken table still reports the failure.
	_, err = svc.List(ctx, domain.ProductBundle)
	require.Error(t, err)
}
