package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulizaboost/boost-service/internal/models"
)

// BoostRepository defines the contract for boost data access. Not-found is
// reported as sql.ErrNoRows; GetByReference reports a miss as (nil, nil)
// because the callback path treats it as a no-op rather than a failure.
type BoostRepository interface {
	Create(ctx context.Context, boost *models.Boost) error
	List(ctx context.Context) ([]models.Boost, error)
	GetByID(ctx context.Context, id int64) (*models.Boost, error)
	GetByIdentificationNumber(ctx context.Context, idNum string) ([]models.Boost, error)
	GetByReference(ctx context.Context, ref string) (*models.Boost, error)
	Delete(ctx context.Context, id int64) error

	ListPaid(ctx context.Context) ([]models.Boost, error)
	ListPaidBetween(ctx context.Context, from, to time.Time) ([]models.Boost, error)
	SumFees(ctx context.Context) (decimal.Decimal, error)
	SumFeesBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountPaid(ctx context.Context) (int64, error)
	CountPaidBetween(ctx context.Context, from, to time.Time) (int64, error)

	SetReference(ctx context.Context, id int64, ref string) error
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
}
