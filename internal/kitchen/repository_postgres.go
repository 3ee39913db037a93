package kitchen

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const kitchenColumns = `
	id, cook_id, name, description, photos,
	street, city, state, pincode,
	lng, lat, cuisines, status, fssai_license,
	rating, total_ratings, total_orders, is_active,
	created_at, updated_at
`

// Spherical-earth distance in meters between a kitchen row and the point
// ($1=lng, $2=lat). Same radius the in-Go haversine uses.
const distanceExpr = `
	2 * 6378100 * asin(sqrt(
		power(sin(radians(lat - $2) / 2), 2) +
		cos(radians($2)) * cos(radians(lat)) *
		power(sin(radians(lng - $1) / 2), 2)
	))
`

func scanKitchen(row pgx.Row) (*Kitchen, error) {
	var (
		k            Kitchen
		photosJSON   []byte
		cuisinesJSON []byte
		lng, lat     float64
		license      *string
	)

	if err := row.Scan(
		&k.ID,
		&k.CookID,
		&k.Name,
		&k.Description,
		&photosJSON,
		&k.Address.Street,
		&k.Address.City,
		&k.Address.State,
		&k.Address.Pincode,
		&lng,
		&lat,
		&cuisinesJSON,
		&k.Status,
		&license,
		&k.Rating,
		&k.TotalRatings,
		&k.TotalOrders,
		&k.IsActive,
		&k.CreatedAt,
		&k.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(photosJSON, &k.Photos); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cuisinesJSON, &k.Cuisines); err != nil {
		return nil, err
	}
	if license != nil {
		k.FSSAILicense = *license
	}
	k.Location = geo.NewPoint(lng, lat)

	return &k, nil
}

func collectKitchens(rows pgx.Rows) ([]*Kitchen, error) {
	defer rows.Close()

	var kitchens []*Kitchen
	for rows.Next() {
		k, err := scanKitchen(rows)
		if err != nil {
			return nil, err
		}
		kitchens = append(kitchens, k)
	}
	return kitchens, rows.Err()
}

// --------------------------------------------------
// Create a kitchen (one active kitchen per cook)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, k *Kitchen) error {
	photosJSON, err := json.Marshal(k.Photos)
	if err != nil {
		return err
	}
	cuisinesJSON, err := json.Marshal(k.Cuisines)
	if err != nil {
		return err
	}

	var license *string
	if k.FSSAILicense != "" {
		license = &k.FSSAILicense
	}

	query := `
		INSERT INTO kitchens (
			id, cook_id, name, description, photos,
			street, city, state, pincode,
			lng, lat, cuisines, status, fssai_license, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE)
		RETURNING rating, total_ratings, total_orders, is_active, created_at, updated_at
	`

	err = r.db.QueryRow(
		ctx,
		query,
		k.ID,
		k.CookID,
		k.Name,
		k.Description,
		photosJSON,
		k.Address.Street,
		k.Address.City,
		k.Address.State,
		k.Address.Pincode,
		k.Location.Lng(),
		k.Location.Lat(),
		cuisinesJSON,
		k.Status,
		license,
	).Scan(&k.Rating, &k.TotalRatings, &k.TotalOrders, &k.IsActive, &k.CreatedAt, &k.UpdatedAt)

	// The partial unique index on cook_id is the authoritative guard.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.Conflict("kitchen already exists for this cook")
	}
	return err
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Kitchen, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+kitchenColumns+`
		FROM kitchens
		WHERE id = $1
	`, id)

	k, err := scanKitchen(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("kitchen not found")
	}
	return k, err
}

func (r *PostgresRepository) FindByCook(ctx context.Context, cookID string) (*Kitchen, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+kitchenColumns+`
		FROM kitchens
		WHERE cook_id = $1
		  AND is_active
	`, cookID)

	k, err := scanKitchen(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("kitchen not found")
	}
	return k, err
}

// --------------------------------------------------
// Update profile fields (cook-editable)
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, k *Kitchen) error {
	photosJSON, err := json.Marshal(k.Photos)
	if err != nil {
		return err
	}
	cuisinesJSON, err := json.Marshal(k.Cuisines)
	if err != nil {
		return err
	}

	var license *string
	if k.FSSAILicense != "" {
		license = &k.FSSAILicense
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE kitchens
		SET name = $2,
		    description = $3,
		    photos = $4,
		    street = $5,
		    city = $6,
		    state = $7,
		    pincode = $8,
		    lng = $9,
		    lat = $10,
		    cuisines = $11,
		    fssai_license = $12,
		    updated_at = now()
		WHERE id = $1
	`,
		k.ID,
		k.Name,
		k.Description,
		photosJSON,
		k.Address.Street,
		k.Address.City,
		k.Address.State,
		k.Address.Pincode,
		k.Location.Lng(),
		k.Location.Lat(),
		cuisinesJSON,
		license,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("kitchen not found")
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) (*Kitchen, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE kitchens
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+kitchenColumns+`
	`, id, status)

	k, err := scanKitchen(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("kitchen not found")
	}
	return k, err
}

func (r *PostgresRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE kitchens
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("kitchen not found")
	}
	return nil
}

func (r *PostgresRepository) AddPhotos(ctx context.Context, id string, urls []string) error {
	urlsJSON, err := json.Marshal(urls)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE kitchens
		SET photos = photos || $2::jsonb, updated_at = now()
		WHERE id = $1
	`, id, urlsJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("kitchen not found")
	}
	return nil
}

// --------------------------------------------------
// Geo candidate queries (buyer-visible kitchens only)
// --------------------------------------------------

const visibleWhere = `
	is_active
	AND status IN ('approved', 'pending')
`

func (r *PostgresRepository) FindNearby(
	ctx context.Context,
	center geo.Point,
	maxDistanceMeters float64,
	limit int,
) ([]*Kitchen, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+kitchenColumns+`
		FROM kitchens
		WHERE `+visibleWhere+`
		  AND `+distanceExpr+` <= $3
		ORDER BY `+distanceExpr+` ASC
		LIMIT NULLIF($4, 0)
	`, center.Lng(), center.Lat(), maxDistanceMeters, limit)
	if err != nil {
		return nil, err
	}
	return collectKitchens(rows)
}

func (r *PostgresRepository) FindWithinRegion(
	ctx context.Context,
	center geo.Point,
	radiusMeters float64,
) ([]*Kitchen, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+kitchenColumns+`
		FROM kitchens
		WHERE `+visibleWhere+`
		  AND `+distanceExpr+` <= $3
	`, center.Lng(), center.Lat(), radiusMeters)
	if err != nil {
		return nil, err
	}
	return collectKitchens(rows)
}

func (r *PostgresRepository) FindAllVisible(ctx context.Context) ([]*Kitchen, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+kitchenColumns+`
		FROM kitchens
		WHERE `+visibleWhere+`
	`)
	if err != nil {
		return nil, err
	}
	return collectKitchens(rows)
}

func (r *PostgresRepository) FindVisibleByIDs(ctx context.Context, ids []string) ([]*Kitchen, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+kitchenColumns+`
		FROM kitchens
		WHERE id = ANY($1)
		  AND `+visibleWhere+`
	`, ids)
	if err != nil {
		return nil, err
	}
	return collectKitchens(rows)
}
