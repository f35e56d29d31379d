package sqlite

import (
	"context"
	"database/sql"

	"github.com/cheapdeals/shop/internal/shop/domain"
)

type bundlesRepo struct {
	db dbtx
}

const bundleColumns = `id, name, description, price, rating, is_active,
	created_at, updated_at`

func (r *bundlesRepo) CreateBundle(ctx context.Context, b domain.Bundle) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bundles (`+bundleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, mapOptionalString(b.Description), b.Price,
		mapOptionalFloat(b.Rating), b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *bundlesRepo) CreateBundleItem(ctx context.Context, item domain.BundleItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bundle_items (id, bundle_id, phone_id, package_id, quantity)
		VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.BundleID, mapOptionalString(item.PhoneID),
		mapOptionalString(item.PackageID), item.Quantity,
	)
	return mapConstraint(err)
}

func (r *bundlesRepo) GetBundleByID(ctx context.Context, id string) (domain.Bundle, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+bundleColumns+` FROM bundles WHERE id = ?`, id)
	b, err := scanBundle(row)
	if err != nil {
		return domain.Bundle{}, err
	}

	items, err := r.bundleItems(ctx, b.ID)
	if err != nil {
		return domain.Bundle{}, err
	}
	b.BundleItems = items
	return b, nil
}

func (r *bundlesRepo) ListBundles(ctx context.Context) ([]domain.Bundle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bundleColumns+` FROM bundles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bundles []domain.Bundle
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	return bundles, rows.Err()
}

// bundleItems loads a bundle's items with the referenced phone or package
// expanded inline.
func (r *bundlesRepo) bundleItems(ctx context.Context, bundleID string) ([]domain.BundleItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, bundle_id, phone_id, package_id, quantity
		FROM bundle_items WHERE bundle_id = ?`, bundleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BundleItem
	for rows.Next() {
		var (
			item      domain.BundleItem
			phoneID   sql.NullString
			packageID sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.BundleID, &phoneID, &packageID, &item.Quantity); err != nil {
			return nil, err
		}
		item.PhoneID = mapNullStringPtr(phoneID)
		item.PackageID = mapNullStringPtr(packageID)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	phones := &phonesRepo{db: r.db}
	packages := &packagesRepo{db: r.db}
	for i := range items {
		if items[i].PhoneID != nil {
			p, err := phones.GetPhoneByID(ctx, *items[i].PhoneID)
			if err != nil {
				return nil, err
			}
			items[i].Phone = &p
		}
		if items[i].PackageID != nil {
			p, err := packages.GetPackageByID(ctx, *items[i].PackageID)
			if err != nil {
				return nil, err
			}
			items[i].Package = &p
		}
	}
	return items, nil
}

func scanBundle(row scanner) (domain.Bundle, error) {
	var (
		b           domain.Bundle
		description sql.NullString
		rating      sql.NullFloat64
	)
	err := row.Scan(
		&b.ID, &b.Name, &description, &b.Price, &rating,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Bundle{}, mapNotFound(err)
	}
	b.Type = domain.ProductBundle
	b.Description = mapNullStringPtr(description)
	b.Rating = mapNullFloatPtr(rating)
	return b, nil
}
