package sqlite

import (
	"context"
	"database/sql"

	"github.com/cheapdeals/shop/internal/shop/domain"
)

type packagesRepo struct {
	db dbtx
}

const packageColumns = `id, name, description, package_type, price, rating,
	is_active, created_at, updated_at`

func (r *packagesRepo) CreatePackage(ctx context.Context, p domain.Package) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO packages (`+packageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, mapOptionalString(p.Description), string(p.PackageType),
		p.Price, mapOptionalFloat(p.Rating), p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *packagesRepo) GetPackageByID(ctx context.Context, id string) (domain.Package, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+packageColumns+` FROM packages WHERE id = ?`, id)
	return scanPackage(row)
}

func (r *packagesRepo) ListPackages(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+packageColumns+` FROM packages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []domain.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func scanPackage(row scanner) (domain.Package, error) {
	var (
		p           domain.Package
		description sql.NullString
		packageType string
		rating      sql.NullFloat64
	)
	err := row.Scan(
		&p.ID, &p.Name, &description, &packageType, &p.Price,
		&rating, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Package{}, mapNotFound(err)
	}
	p.Type = domain.ProductPackage
	p.PackageType = domain.PackageType(packageType)
	p.Description = mapNullStringPtr(description)
	p.Rating = mapNullFloatPtr(rating)
	return p, nil
}
