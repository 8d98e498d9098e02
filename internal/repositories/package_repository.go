package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
)

type PackageRepository struct {
	DB *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{DB: db}
}

func (r *PackageRepository) Create(ctx context.Context, companyID int, req *models.PackageRequest) (*models.PackageWithItems, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p := models.Package{
		CompanyID:    companyID,
		Name:         req.Name,
		BHKType:      req.BHKType,
		Tier:         req.Tier,
		BaseRateSqft: req.BaseRateSqft,
		Description:  req.Description,
		IsActive:     true,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO packages(company_id, name, bhk_type, tier, base_rate_sqft, description)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.CompanyID, p.Name, p.BHKType, p.Tier, p.BaseRateSqft, p.Description,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	items, err := insertPackageItems(ctx, tx, p.ID, req.Items)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.PackageWithItems{Package: p, Items: items}, nil
}

func (r *PackageRepository) Get(ctx context.Context, companyID, id int) (*models.PackageWithItems, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, company_id, name, bhk_type, tier, base_rate_sqft, description, is_active, created_at
		 FROM packages WHERE id=$1 AND company_id=$2`, id, companyID)

	var p models.Package
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.BHKType, &p.Tier, &p.BaseRateSqft,
		&p.Description, &p.IsActive, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Package")
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &models.PackageWithItems{Package: p, Items: items}, nil
}

// List returns active packages, optionally filtered by BHK type and tier
func (r *PackageRepository) List(ctx context.Context, companyID int, bhkType, tier string) ([]*models.Package, error) {
	query := `SELECT id, company_id, name, bhk_type, tier, base_rate_sqft, description, is_active, created_at
	          FROM packages WHERE company_id=$1 AND is_active=TRUE`
	args := []interface{}{companyID}

	if bhkType != "" {
		args = append(args, bhkType)
		query += ` AND bhk_type=$2`
	}
	if tier != "" {
		args = append(args, tier)
		if len(args) == 3 {
			query += ` AND tier=$3`
		} else {
			query += ` AND tier=$2`
		}
	}
	query += ` ORDER BY bhk_type, tier`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []*models.Package
	for rows.Next() {
		var p models.Package
		err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.BHKType, &p.Tier, &p.BaseRateSqft,
			&p.Description, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		packages = append(packages, &p)
	}
	return packages, rows.Err()
}

// Update replaces the package fields and its full item list
func (r *PackageRepository) Update(ctx context.Context, companyID, id int, req *models.PackageRequest) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE packages SET name=$1, bhk_type=$2, tier=$3, base_rate_sqft=$4, description=$5
		 WHERE id=$6 AND company_id=$7`,
		req.Name, req.BHKType, req.Tier, req.BaseRateSqft, req.Description, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Package")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM package_items WHERE package_id=$1`, id); err != nil {
		return err
	}
	if _, err := insertPackageItems(ctx, tx, id, req.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete soft-deletes: quotations keep their package reference
func (r *PackageRepository) Delete(ctx context.Context, companyID, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE packages SET is_active=FALSE WHERE id=$1 AND company_id=$2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Package")
	}
	return nil
}

func (r *PackageRepository) listItems(ctx context.Context, packageID int) ([]models.PackageItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, package_id, item_name, description, unit, sq_foot, quantity, rate, amount, room_type, sort_order
		 FROM package_items WHERE package_id=$1 ORDER BY sort_order, id`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.PackageItem{}
	for rows.Next() {
		var item models.PackageItem
		err := rows.Scan(&item.ID, &item.PackageID, &item.ItemName, &item.Description, &item.Unit,
			&item.SqFoot, &item.Quantity, &item.Rate, &item.Amount, &item.RoomType, &item.SortOrder)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertPackageItems(ctx context.Context, tx pgx.Tx, packageID int, items []models.PackageItem) ([]models.PackageItem, error) {
	out := make([]models.PackageItem, 0, len(items))
	for i, item := range items {
		item.PackageID = packageID
		item.SortOrder = i
		err := tx.QueryRow(ctx,
			`INSERT INTO package_items(package_id, item_name, description, unit, sq_foot, quantity, rate, amount, room_type, sort_order)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id`,
			item.PackageID, item.ItemName, item.Description, item.Unit, item.SqFoot,
			item.Quantity, item.Rate, item.Amount, item.RoomType, item.SortOrder,
		).Scan(&item.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
