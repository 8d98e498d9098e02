package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
)

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Create(ctx context.Context, companyID int, req *models.ClientRequest) (*models.Client, error) {
	c := models.Client{
		CompanyID:       companyID,
		Name:            req.Name,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		ProjectLocation: req.ProjectLocation,
		Notes:           req.Notes,
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO clients(company_id, name, address, phone, email, project_location, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		c.CompanyID, c.Name, c.Address, c.Phone, c.Email, c.ProjectLocation, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Get(ctx context.Context, companyID, id int) (*models.Client, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, company_id, name, address, phone, email, project_location, notes, created_at, updated_at
		 FROM clients WHERE id=$1 AND company_id=$2`, id, companyID)

	var c models.Client
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Address, &c.Phone, &c.Email,
		&c.ProjectLocation, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Client")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the company's clients, newest first. A non-empty search
// matches name, phone or project location, case-insensitively.
func (r *ClientRepository) List(ctx context.Context, companyID int, search string) ([]*models.Client, error) {
	query := `SELECT id, company_id, name, address, phone, email, project_location, notes, created_at, updated_at
	          FROM clients WHERE company_id=$1`
	args := []interface{}{companyID}

	if search != "" {
		query += ` AND (name ILIKE $2 OR phone ILIKE $2 OR project_location ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var c models.Client
		err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Address, &c.Phone, &c.Email,
			&c.ProjectLocation, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, companyID, id int, req *models.ClientRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE clients SET name=$1, address=$2, phone=$3, email=$4, project_location=$5,
		        notes=$6, updated_at=NOW()
		 WHERE id=$7 AND company_id=$8`,
		req.Name, req.Address, req.Phone, req.Email, req.ProjectLocation, req.Notes, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Client")
	}
	return nil
}

// Delete removes a client unless any quotation references it
func (r *ClientRepository) Delete(ctx context.Context, companyID, id int) error {
	var quotationCount int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM quotations WHERE client_id=$1 AND company_id=$2`,
		id, companyID).Scan(&quotationCount)
	if err != nil {
		return err
	}
	if quotationCount > 0 {
		return apperrors.Conflictf("Cannot delete client with existing quotations")
	}

	tag, err := r.DB.Exec(ctx,
		`DELETE FROM clients WHERE id=$1 AND company_id=$2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Client")
	}
	return nil
}
