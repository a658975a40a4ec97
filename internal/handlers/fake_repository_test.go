package handlers_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulizaboost/boost-service/internal/models"
)

// fakeBoostRepository implements interfaces.BoostRepository in memory with
// the same contract as the Postgres implementation: sql.ErrNoRows for
// id-keyed misses, (nil, nil) for reference misses, closed-interval date
// filtering.
type fakeBoostRepository struct {
	nextID int64
	boosts map[int64]*models.Boost
}

func newFakeBoostRepository() *fakeBoostRepository {
	return &fakeBoostRepository{nextID: 1, boosts: map[int64]*models.Boost{}}
}

func (f *fakeBoostRepository) Create(_ context.Context, boost *models.Boost) error {
	boost.ID = f.nextID
	f.nextID++
	boost.CreatedAt = time.Now()
	copied := *boost
	f.boosts[boost.ID] = &copied
	return nil
}

func (f *fakeBoostRepository) List(_ context.Context) ([]models.Boost, error) {
	out := []models.Boost{}
	for _, b := range f.boosts {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBoostRepository) GetByID(_ context.Context, id int64) (*models.Boost, error) {
	b, ok := f.boosts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBoostRepository) GetByIdentificationNumber(_ context.Context, idNum string) ([]models.Boost, error) {
	out := []models.Boost{}
	for _, b := range f.boosts {
		if b.IdentificationNumber == idNum {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBoostRepository) GetByReference(_ context.Context, ref string) (*models.Boost, error) {
	if ref == "" {
		return nil, nil
	}
	for _, b := range f.boosts {
		if b.ExternalReference == ref {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBoostRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.boosts[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.boosts, id)
	return nil
}

func (f *fakeBoostRepository) ListPaid(_ context.Context) ([]models.Boost, error) {
	out := []models.Boost{}
	for _, b := range f.boosts {
		if b.Paid {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBoostRepository) ListPaidBetween(_ context.Context, from, to time.Time) ([]models.Boost, error) {
	out := []models.Boost{}
	for _, b := range f.boosts {
		if f.paidWithin(b, from, to) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBoostRepository) SumFees(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range f.boosts {
		if b.Paid {
			total = total.Add(b.Fee)
		}
	}
	return total, nil
}

func (f *fakeBoostRepository) SumFeesBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range f.boosts {
		if f.paidWithin(b, from, to) {
			total = total.Add(b.Fee)
		}
	}
	return total, nil
}

func (f *fakeBoostRepository) CountPaid(_ context.Context) (int64, error) {
	var count int64
	for _, b := range f.boosts {
		if b.Paid {
			count++
		}
	}
	return count, nil
}

func (f *fakeBoostRepository) CountPaidBetween(_ context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, b := range f.boosts {
		if f.paidWithin(b, from, to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBoostRepository) SetReference(_ context.Context, id int64, ref string) error {
	b, ok := f.boosts[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.ExternalReference = ref
	return nil
}

func (f *fakeBoostRepository) MarkPaid(_ context.Context, id int64, paidAt time.Time) error {
	b, ok := f.boosts[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.Paid = true
	t := paidAt
	b.PaymentDate = &t
	return nil
}

// paidWithin mirrors `paid = TRUE AND payment_date BETWEEN from AND to`.
func (f *fakeBoostRepository) paidWithin(b *models.Boost, from, to time.Time) bool {
	if !b.Paid || b.PaymentDate == nil {
		return false
	}
	d := *b.PaymentDate
	return !d.Before(from) && !d.After(to)
}
