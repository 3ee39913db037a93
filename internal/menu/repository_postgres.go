package menu

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const menuColumns = `
	id, kitchen_id, date, dishes, is_active, created_at, updated_at
`

func scanMenu(row pgx.Row) (*Menu, error) {
	var (
		m          Menu
		dishesJSON []byte
	)

	if err := row.Scan(
		&m.ID,
		&m.KitchenID,
		&m.Date,
		&dishesJSON,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(dishesJSON, &m.Dishes); err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMenus(rows pgx.Rows) ([]*Menu, error) {
	defer rows.Close()

	var menus []*Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// --------------------------------------------------
// Create menu (one active menu per kitchen per day)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, m *Menu) error {
	dishesJSON, err := json.Marshal(m.Dishes)
	if err != nil {
		return err
	}

	// The date column is day-granular; store the local calendar day so the
	// unique index keys on the same boundary DayWindow uses.
	day, _ := DayWindow(m.Date)

	err = r.db.QueryRow(ctx, `
		INSERT INTO menus (id, kitchen_id, date, dishes, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING is_active, created_at, updated_at
	`,
		m.ID,
		m.KitchenID,
		day,
		dishesJSON,
	).Scan(&m.IsActive, &m.CreatedAt, &m.UpdatedAt)

	// Unique index on (kitchen_id, day) is the authoritative Conflict
	// signal; two concurrent creates both pass the pre-check and one
	// lands here.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.Conflict("menu already exists for this date")
	}
	return err
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Menu, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+menuColumns+`
		FROM menus
		WHERE id = $1
	`, id)

	m, err := scanMenu(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("menu not found")
	}
	return m, err
}

func (r *PostgresRepository) FindByKitchen(ctx context.Context, kitchenID string) ([]*Menu, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+menuColumns+`
		FROM menus
		WHERE kitchen_id = $1
		  AND is_active
		ORDER BY date DESC
	`, kitchenID)
	if err != nil {
		return nil, err
	}
	return collectMenus(rows)
}

func (r *PostgresRepository) FindByKitchenAndDate(
	ctx context.Context,
	kitchenID string,
	date time.Time,
) (*Menu, error) {

	day, _ := DayWindow(date)

	row := r.db.QueryRow(ctx, `
		SELECT `+menuColumns+`
		FROM menus
		WHERE kitchen_id = $1
		  AND date = $2
		  AND is_active
	`, kitchenID, day)

	m, err := scanMenu(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("menu not found")
	}
	return m, err
}

func (r *PostgresRepository) Update(ctx context.Context, m *Menu) error {
	dishesJSON, err := json.Marshal(m.Dishes)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE menus
		SET dishes = $2, is_active = $3, updated_at = now()
		WHERE id = $1
	`, m.ID, dishesJSON, m.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("menu not found")
	}
	return nil
}

// --------------------------------------------------
// Toggle one dish's status inside the JSONB document
// --------------------------------------------------
func (r *PostgresRepository) UpdateDishStatus(
	ctx context.Context,
	menuID string,
	dishID string,
	status string,
) (*Menu, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT `+menuColumns+`
		FROM menus
		WHERE id = $1
		FOR UPDATE
	`, menuID)

	m, err := scanMenu(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("menu not found")
	}
	if err != nil {
		return nil, err
	}

	found := false
	for i := range m.Dishes {
		if m.Dishes[i].ID == dishID {
			m.Dishes[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, apperror.NotFound("dish not found")
	}

	dishesJSON, err := json.Marshal(m.Dishes)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE menus
		SET dishes = $2, updated_at = now()
		WHERE id = $1
	`, menuID, dishesJSON); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// --------------------------------------------------
// Decrement one dish's stock inside the JSONB document
// --------------------------------------------------
func (r *PostgresRepository) DecrementDishQuantity(
	ctx context.Context,
	menuID string,
	dishID string,
	by int,
) (*Menu, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT `+menuColumns+`
		FROM menus
		WHERE id = $1
		FOR UPDATE
	`, menuID)

	m, err := scanMenu(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("menu not found")
	}
	if err != nil {
		return nil, err
	}

	found := false
	for i := range m.Dishes {
		if m.Dishes[i].ID == dishID {
			remaining := m.Dishes[i].AvailableQuantity - by
			if remaining < 0 {
				remaining = 0
			}
			m.Dishes[i].AvailableQuantity = remaining
			found = true
			break
		}
	}
	if !found {
		return nil, apperror.NotFound("dish not found")
	}

	dishesJSON, err := json.Marshal(m.Dishes)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE menus
		SET dishes = $2, updated_at = now()
		WHERE id = $1
	`, menuID, dishesJSON); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) FindActiveInWindow(
	ctx context.Context,
	from, to time.Time,
	textQuery string,
) ([]*Menu, error) {

	query := `
		SELECT ` + menuColumns + `
		FROM menus
		WHERE date >= $1 AND date < $2
		  AND is_active
	`
	args := []interface{}{from, to}

	if textQuery != "" {
		query += `
		  AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(dishes) AS d
			WHERE d->>'name' ILIKE '%' || $3 || '%'
			   OR d->>'description' ILIKE '%' || $3 || '%'
		  )
		`
		args = append(args, textQuery)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectMenus(rows)
}
