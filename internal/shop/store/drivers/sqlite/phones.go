package sqlite

import (
	"context"
	"database/sql"

	"github.com/cheapdeals/shop/internal/shop/domain"
)

type phonesRepo struct {
	db dbtx
}

const phoneColumns = `id, name, brand, price, img_url, description, rating,
	stock, is_active, created_at, updated_at`

func (r *phonesRepo) CreatePhone(ctx context.Context, p domain.Phone) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO phones (`+phoneColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Brand, p.Price, p.ImgURL,
		mapOptionalString(p.Description), mapOptionalFloat(p.Rating),
		p.Stock, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *phonesRepo) GetPhoneByID(ctx context.Context, id string) (domain.Phone, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+phoneColumns+` FROM phones WHERE id = ?`, id)
	return scanPhone(row)
}

func (r *phonesRepo) ListPhones(ctx context.Context) ([]domain.Phone, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+phoneColumns+` FROM phones ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phones []domain.Phone
	for rows.Next() {
		p, err := scanPhone(rows)
		if err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPhone(row scanner) (domain.Phone, error) {
	var (
		p           domain.Phone
		description sql.NullString
		rating      sql.NullFloat64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Price, &p.ImgURL,
		&description, &rating, &p.Stock, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Phone{}, mapNotFound(err)
	}
	p.Type = domain.ProductPhone
	p.Description = mapNullStringPtr(description)
	p.Rating = mapNullFloatPtr(rating)
	return p, nil
}
