package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
)

type CompanyRepository struct {
	DB *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) List(ctx context.Context) ([]*models.Company, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, code, address, phone, email, gst_number, logo_path, created_at
		 FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		var c models.Company
		err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Address, &c.Phone, &c.Email,
			&c.GSTNumber, &c.LogoPath, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepository) Get(ctx context.Context, id int) (*models.Company, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, code, address, phone, email, gst_number, logo_path, created_at
		 FROM companies WHERE id=$1`, id)

	var c models.Company
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Address, &c.Phone, &c.Email,
		&c.GSTNumber, &c.LogoPath, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Company")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update changes company profile fields. The code is immutable: it is
// embedded in every issued document number.
func (r *CompanyRepository) Update(ctx context.Context, id int, req *models.UpdateCompanyRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE companies SET name=$1, address=$2, phone=$3, email=$4, gst_number=$5
		 WHERE id=$6`,
		req.Name, req.Address, req.Phone, req.Email, req.GSTNumber, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Company")
	}
	return nil
}

func (r *CompanyRepository) UpdateLogo(ctx context.Context, id int, logoPath string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE companies SET logo_path=$1 WHERE id=$2`, logoPath, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Company")
	}
	return nil
}
