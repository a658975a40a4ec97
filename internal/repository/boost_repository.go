package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulizaboost/boost-service/internal/models"
)

const boostColumns = `id, identification_number, amount, fee, paid, payment_date, external_reference, created_at`

type BoostRepository struct {
	db *sql.DB
}

func NewBoostRepository(db *sql.DB) *BoostRepository {
	return &BoostRepository{db: db}
}

func (r *BoostRepository) InitDB() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS boosts (
			id BIGSERIAL PRIMARY KEY,
			identification_number VARCHAR(255) NOT NULL,
			amount DECIMAL(15,2) NOT NULL DEFAULT 0,
			fee DECIMAL(15,2) NOT NULL DEFAULT 0,
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			payment_date TIMESTAMP,
			external_reference VARCHAR(255) UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_boosts_identification_number ON boosts(identification_number)`,
		`CREATE INDEX IF NOT EXISTS idx_boosts_external_reference ON boosts(external_reference)`,
		`CREATE INDEX IF NOT EXISTS idx_boosts_paid_payment_date ON boosts(paid, payment_date)`,
	}

	for _, query := range queries {
		if _, err := r.db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

func (r *BoostRepository) Create(ctx context.Context, boost *models.Boost) error {
	boost.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, `
		INSERT INTO boosts (identification_number, amount, fee, paid, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, boost.IdentificationNumber, boost.Amount, boost.Fee, boost.Paid, boost.CreatedAt).Scan(&boost.ID)
}

func (r *BoostRepository) List(ctx context.Context) ([]models.Boost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+boostColumns+` FROM boosts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return scanBoosts(rows)
}

func (r *BoostRepository) GetByID(ctx context.Context, id int64) (*models.Boost, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+boostColumns+` FROM boosts WHERE id = $1
	`, id)
	return scanBoost(row)
}

func (r *BoostRepository) GetByIdentificationNumber(ctx context.Context, idNum string) ([]models.Boost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+boostColumns+` FROM boosts WHERE identification_number = $1 ORDER BY created_at DESC
	`, idNum)
	if err != nil {
		return nil, err
	}
	return scanBoosts(rows)
}

// GetByReference returns (nil, nil) when no boost carries the reference.
func (r *BoostRepository) GetByReference(ctx context.Context, ref string) (*models.Boost, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+boostColumns+` FROM boosts WHERE external_reference = $1
	`, ref)
	boost, err := scanBoost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return boost, nil
}

func (r *BoostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM boosts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BoostRepository) ListPaid(ctx context.Context) ([]models.Boost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+boostColumns+` FROM boosts WHERE paid = TRUE ORDER BY payment_date DESC
	`)
	if err != nil {
		return nil, err
	}
	return scanBoosts(rows)
}

func (r *BoostRepository) ListPaidBetween(ctx context.Context, from, to time.Time) ([]models.Boost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+boostColumns+` FROM boosts
		WHERE paid = TRUE AND payment_date BETWEEN $1 AND $2
		ORDER BY payment_date DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	return scanBoosts(rows)
}

func (r *BoostRepository) SumFees(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(fee), 0) FROM boosts WHERE paid = TRUE
	`).Scan(&total)
	return total, err
}

func (r *BoostRepository) SumFeesBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(fee), 0) FROM boosts
		WHERE paid = TRUE AND payment_date BETWEEN $1 AND $2
	`, from, to).Scan(&total)
	return total, err
}

func (r *BoostRepository) CountPaid(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM boosts WHERE paid = TRUE
	`).Scan(&count)
	return count, err
}

func (r *BoostRepository) CountPaidBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM boosts
		WHERE paid = TRUE AND payment_date BETWEEN $1 AND $2
	`, from, to).Scan(&count)
	return count, err
}

func (r *BoostRepository) SetReference(ctx context.Context, id int64, ref string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE boosts SET external_reference = $1 WHERE id = $2
	`, ref, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BoostRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE boosts SET paid = TRUE, payment_date = $1 WHERE id = $2
	`, paidAt, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBoost(row rowScanner) (*models.Boost, error) {
	var boost models.Boost
	var paymentDate sql.NullTime
	var externalRef sql.NullString

	err := row.Scan(&boost.ID, &boost.IdentificationNumber, &boost.Amount, &boost.Fee,
		&boost.Paid, &paymentDate, &externalRef, &boost.CreatedAt)
	if err != nil {
		return nil, err
	}

	if paymentDate.Valid {
		t := paymentDate.Time
		boost.PaymentDate = &t
	}
	boost.ExternalReference = externalRef.String

	return &boost, nil
}

func scanBoosts(rows *sql.Rows) ([]models.Boost, error) {
	defer rows.Close()

	boosts := []models.Boost{}
	for rows.Next() {
		boost, err := scanBoost(rows)
		if err != nil {
			return nil, err
		}
		boosts = append(boosts, *boost)
	}
	return boosts, rows.Err()
}
