package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	packageerrors "roamly/internal/packages/errors"
	"roamly/internal/packages/repository"
	"roamly/internal/packages/validator"
	"roamly/pkg/config"
	apperrors "roamly/pkg/errors"
	"roamly/pkg/events"
	"roamly/pkg/logger"
	"roamly/pkg/model"
)

type fakePackageRepo struct {
	created   *model.Package
	replaced  *model.Package
	deletedID string
	byID      map[string]*model.Package
	all       []*model.Package
	lastList  repository.ListFilter
	findCalls int
}

func isHexObjectID(id string) bool {
	return len(id) == 24
}

func (f *fakePackageRepo) Create(_ context.Context, pkg *model.Package) error {
	pkg.ID = "656f1e4d8b9c2a0001000001"
	f.created = pkg
	return nil
}

func (f *fakePackageRepo) FindByID(_ context.Context, id string) (*model.Package, error) {
	f.findCalls++
	if !isHexObjectID(id) {
		return nil, packageerrors.ErrInvalidID
	}
	if pkg, ok := f.byID[id]; ok {
		copied := *pkg
		return &copied, nil
	}
	return nil, packageerrors.ErrNotFound
}

func (f *fakePackageRepo) FindAll(_ context.Context, filter repository.ListFilter) ([]*model.Package, error) {
	f.lastList = filter
	return f.all, nil
}

func (f *fakePackageRepo) Replace(_ context.Context, id string, pkg *model.Package) error {
	if _, ok := f.byID[id]; !ok {
		return packageerrors.ErrNotFound
	}
	f.replaced = pkg
	return nil
}

func (f *fakePackageRepo) Delete(_ context.Context, id string) error {
	if !isHexObjectID(id) {
		return packageerrors.ErrInvalidID
	}
	if _, ok := f.byID[id]; !ok {
		return packageerrors.ErrNotFound
	}
	f.deletedID = id
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxListLimit: 100,
		Log:          logger.New(logger.Config{Output: io.Discard}),
	}
}

func newTestService(repo *fakePackageRepo) PackageService {
	cfg := testConfig()
	return NewPackageService(repo, validator.NewPackageValidator(cfg.Log), events.NopPublisher{}, cfg)
}

func validPackage() *model.Package {
	return &model.Package{
		Name:         "Dubai Getaway",
		Description:  "Five nights in Dubai with desert safari.",
		Price:        45999,
		Duration:     "5N/6D",
		Destinations: []string{"Dubai"},
		IsActive:     true,
	}
}

func TestCreateMissingFieldsListsNames(t *testing.T) {
	repo := &fakePackageRepo{}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Package{Price: 100})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.ElementsMatch(t,
		[]string{"name", "description", "duration", "destinations"},
		appErr.Details["missing"],
	)
	assert.Nil(t, repo.created, "nothing should be persisted")
}

func TestCreateSetsTimestampsAndDefaults(t *testing.T) {
	repo := &fakePackageRepo{}
	svc := newTestService(repo)
	pkg := validPackage()

	require.NoError(t, svc.Create(context.Background(), pkg))

	assert.NotEmpty(t, pkg.ID)
	assert.False(t, pkg.CreatedAt.IsZero())
	assert.Equal(t, pkg.CreatedAt, pkg.UpdatedAt)
	assert.Equal(t, 1, pkg.MinPersons)
	assert.NotNil(t, pkg.Inclusions)
	assert.NotNil(t, pkg.Images)
}

func TestCreateSanitizesInput(t *testing.T) {
	repo := &fakePackageRepo{}
	svc := newTestService(repo)
	pkg := validPackage()
	pkg.Name = "  Dubai   Getaway "
	pkg.Destinations = []string{" Dubai ", "Dubai", ""}

	require.NoError(t, svc.Create(context.Background(), pkg))

	assert.Equal(t, "Dubai Getaway", pkg.Name)
	assert.Equal(t, []string{"Dubai"}, pkg.Destinations)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	existing := validPackage()
	existing.ID = "656f1e4d8b9c2a0001000002"
	repo := &fakePackageRepo{byID: map[string]*model.Package{existing.ID: existing}}
	svc := newTestService(repo)

	newPrice := 39999.0
	updated, err := svc.Update(context.Background(), existing.ID, &model.PackageUpdate{
		Price: &newPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, existing.Name, updated.Name)
	assert.Equal(t, existing.Destinations, updated.Destinations)
	assert.Equal(t, existing.ID, updated.ID)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || existing.CreatedAt.IsZero())
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	repo := &fakePackageRepo{byID: map[string]*model.Package{}}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), "656f1e4d8b9c2a0001000003", &model.PackageUpdate{})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestUpdateRejectsInvalidFieldsBeforeLookup(t *testing.T) {
	repo := &fakePackageRepo{byID: map[string]*model.Package{}}
	svc := newTestService(repo)

	badPrice := -5.0
	_, err := svc.Update(context.Background(), "656f1e4d8b9c2a0001000006", &model.PackageUpdate{
		Price: &badPrice,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, 0, repo.findCalls, "invalid updates should be rejected without a lookup")
}

func TestUpdateMalformedIDReturnsBadRequest(t *testing.T) {
	repo := &fakePackageRepo{byID: map[string]*model.Package{}}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), "not-an-object-id", &model.PackageUpdate{})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestDeleteIsHardDelete(t *testing.T) {
	existing := validPackage()
	existing.ID = "656f1e4d8b9c2a0001000004"
	repo := &fakePackageRepo{byID: map[string]*model.Package{existing.ID: existing}}
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), existing.ID))
	assert.Equal(t, existing.ID, repo.deletedID)
}

func TestDeleteUnknownIDReturnsNotFound(t *testing.T) {
	repo := &fakePackageRepo{byID: map[string]*model.Package{}}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "656f1e4d8b9c2a0001000005")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestListClampsLimitAndNeverReturnsNil(t *testing.T) {
	repo := &fakePackageRepo{}
	svc := newTestService(repo)

	got, err := svc.List(context.Background(), repository.ListFilter{Limit: 5000})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 100, repo.lastList.Limit)
}
