package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fareerrors "roamly/internal/specialfares/errors"
	"roamly/internal/specialfares/repository"
	"roamly/internal/specialfares/validator"
	"roamly/pkg/config"
	apperrors "roamly/pkg/errors"
	"roamly/pkg/events"
	"roamly/pkg/logger"
	"roamly/pkg/model"
)

type fakeFareRepo struct {
	created       *model.SpecialFare
	replaced      *model.SpecialFare
	deactivatedID string
	deactivatedAt time.Time
	byID          map[string]*model.SpecialFare
	all           []*model.SpecialFare
	lastList      repository.ListFilter
	findCalls     int
}

func (f *fakeFareRepo) Create(_ context.Context, fare *model.SpecialFare) error {
	fare.ID = "656f1e4d8b9c2a0002000001"
	f.created = fare
	return nil
}

func (f *fakeFareRepo) FindByID(_ context.Context, id string) (*model.SpecialFare, error) {
	f.findCalls++
	if len(id) != 24 {
		return nil, fareerrors.ErrInvalidID
	}
	if fare, ok := f.byID[id]; ok {
		copied := *fare
		return &copied, nil
	}
	return nil, fareerrors.ErrNotFound
}

func (f *fakeFareRepo) FindAll(_ context.Context, filter repository.ListFilter) ([]*model.SpecialFare, error) {
	f.lastList = filter
	return f.all, nil
}

func (f *fakeFareRepo) Replace(_ context.Context, id string, fare *model.SpecialFare) error {
	if _, ok := f.byID[id]; !ok {
		return fareerrors.ErrNotFound
	}
	f.replaced = fare
	return nil
}

func (f *fakeFareRepo) Deactivate(_ context.Context, id string, at time.Time) error {
	if len(id) != 24 {
		return fareerrors.ErrInvalidID
	}
	if _, ok := f.byID[id]; !ok {
		return fareerrors.ErrNotFound
	}
	f.deactivatedID = id
	f.deactivatedAt = at
	return nil
}

func newTestService(repo *fakeFareRepo) SpecialFareService {
	cfg := &config.Config{
		MaxListLimit: 100,
		Log:          logger.New(logger.Config{Output: io.Discard}),
	}
	return NewSpecialFareService(repo, validator.NewSpecialFareValidator(cfg.Log), events.NopPublisher{}, cfg)
}

func validFare() *model.SpecialFare {
	return &model.SpecialFare{
		Title:           "Dubai Flash Sale",
		Description:     "Limited seats on the Kochi to Dubai route.",
		Price:           499,
		OriginalPrice:   699,
		ValidFrom:       model.NewFlexTime(time.Now().UTC()),
		ValidTo:         model.NewFlexTime(time.Now().UTC().Add(10 * 24 * time.Hour)),
		DepartureCities: []model.CityRef{{City: "Kochi", Code: "COK"}},
		ArrivalCities:   []model.CityRef{{City: "Dubai", Code: "DXB"}},
		IsActive:        true,
	}
}

func TestCreateComputesDerivedDiscount(t *testing.T) {
	repo := &fakeFareRepo{}
	svc := newTestService(repo)
	fare := validFare()
	// Client-supplied derived values must be ignored.
	fare.DiscountAmount = 1
	fare.DiscountPercentage = 1

	require.NoError(t, svc.Create(context.Background(), fare))

	assert.Equal(t, 200.0, fare.DiscountAmount)
	assert.Equal(t, 29, fare.DiscountPercentage)
	assert.Positive(t, fare.DaysRemaining)
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := &fakeFareRepo{}
	svc := newTestService(repo)
	fare := validFare()

	require.NoError(t, svc.Create(context.Background(), fare))

	assert.Equal(t, "INR", fare.Currency)
	assert.Equal(t, "standard", fare.FareType)
	assert.Equal(t, "return", fare.TripType)
	assert.Equal(t, "non-refundable", fare.CancellationPolicy)
	assert.False(t, fare.CreatedAt.IsZero())
	assert.Equal(t, fare.CreatedAt, fare.UpdatedAt)
}

func TestCreateMissingFieldsListsNames(t *testing.T) {
	repo := &fakeFareRepo{}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.SpecialFare{Title: "Bare"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.ElementsMatch(t,
		[]string{"description", "price", "originalPrice", "validFrom", "validTo", "departureCities", "arrivalCities"},
		appErr.Details["missing"],
	)
	assert.Nil(t, repo.created)
}

func TestCreateRejectsPriceAboveOriginal(t *testing.T) {
	repo := &fakeFareRepo{}
	svc := newTestService(repo)
	fare := validFare()
	fare.Price = 999
	fare.OriginalPrice = 699

	err := svc.Create(context.Background(), fare)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestUpdateRecomputesDiscountFromNewPrice(t *testing.T) {
	existing := validFare()
	existing.ID = "656f1e4d8b9c2a0002000002"
	existing.Currency = "INR"
	existing.FareType = "sale"
	existing.TripType = "return"
	existing.CancellationPolicy = "refundable"
	existing.ApplyDiscount()
	repo := &fakeFareRepo{byID: map[string]*model.SpecialFare{existing.ID: existing}}
	svc := newTestService(repo)

	newPrice := 349.0
	updated, err := svc.Update(context.Background(), existing.ID, &model.SpecialFareUpdate{
		Price: &newPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, 350.0, updated.DiscountAmount)
	assert.Equal(t, 50, updated.DiscountPercentage)
	assert.Equal(t, existing.Title, updated.Title)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestUpdateRejectsInvalidFieldsBeforeLookup(t *testing.T) {
	repo := &fakeFareRepo{byID: map[string]*model.SpecialFare{}}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), "656f1e4d8b9c2a0002000005", &model.SpecialFareUpdate{
		FareType: "clearance",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, 0, repo.findCalls, "invalid updates should be rejected without a lookup")
}

func TestDeleteMalformedIDReturnsBadRequest(t *testing.T) {
	repo := &fakeFareRepo{byID: map[string]*model.SpecialFare{}}
	svc := newTestService(repo)

	err := svc.Deactivate(context.Background(), "not-an-object-id")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestDeleteIsSoftDelete(t *testing.T) {
	existing := validFare()
	existing.ID = "656f1e4d8b9c2a0002000003"
	repo := &fakeFareRepo{byID: map[string]*model.SpecialFare{existing.ID: existing}}
	svc := newTestService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), existing.ID))

	assert.Equal(t, existing.ID, repo.deactivatedID)
	assert.False(t, repo.deactivatedAt.IsZero(), "updatedAt must be refreshed on soft delete")
}

func TestDeleteUnknownIDReturnsNotFound(t *testing.T) {
	repo := &fakeFareRepo{byID: map[string]*model.SpecialFare{}}
	svc := newTestService(repo)

	err := svc.Deactivate(context.Background(), "656f1e4d8b9c2a0002000004")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestListRefreshesDaysRemaining(t *testing.T) {
	fare := validFare()
	fare.ValidTo = model.NewFlexTime(time.Now().UTC().Add(48*time.Hour + time.Minute))
	repo := &fakeFareRepo{all: []*model.SpecialFare{fare}}
	svc := newTestService(repo)

	got, err := svc.List(context.Background(), repository.ListFilter{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DaysRemaining)
}
