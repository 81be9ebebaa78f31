package service

import (
	"context"
	"errors"
	"time"

	packageerrors "roamly/internal/packages/errors"
	"roamly/internal/packages/repository"
	"roamly/internal/packages/validator"
	"roamly/pkg/config"
	apperrors "roamly/pkg/errors"
	"roamly/pkg/events"
	"roamly/pkg/model"
	"roamly/pkg/sanitizer"
)

type PackageService interface {
	List(ctx context.Context, filter repository.ListFilter) ([]*model.Package, error)
	Create(ctx context.Context, pkg *model.Package) error
	Update(ctx context.Context, id string, updates *model.PackageUpdate) (*model.Package, error)
	Delete(ctx context.Context, id string) error
}

type packageService struct {
	repo      repository.PackageRepository
	validator *validator.PackageValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewPackageService(
	repo repository.PackageRepository,
	validator *validator.PackageValidator,
	publisher events.Publisher,
	cfg *config.Config,
) PackageService {
	return &packageService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *packageService) List(ctx context.Context, filter repository.ListFilter) ([]*model.Package, error) {
	filter.Limit = s.cfg.NormalizeListLimit(filter.Limit)

	packages, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list packages", "error", err)
		return nil, apperrors.Internal("Failed to retrieve packages", err)
	}
	if packages == nil {
		packages = []*model.Package{}
	}
	return packages, nil
}

func (s *packageService) Create(ctx context.Context, pkg *model.Package) error {
	s.sanitize(pkg)

	if missing := validator.MissingCreateFields(pkg); len(missing) > 0 {
		return apperrors.Validation("Missing required fields", map[string]any{
			"missing": missing,
		})
	}

	s.applyDefaults(pkg)

	if err := s.validator.Validate(pkg); err != nil {
		s.cfg.Log.Warn("Package validation failed", "name", pkg.Name, "error", err)
		return apperrors.Validation("Package validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	now := time.Now().UTC()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	if err := s.repo.Create(ctx, pkg); err != nil {
		s.cfg.Log.Error("Failed to create package", "name", pkg.Name, "error", err)
		return apperrors.Internal("Failed to create package", err)
	}

	s.publisher.Publish(ctx, events.TypePackageCreated, pkg.ID, pkg)
	s.cfg.Log.Info("Package created", "id", pkg.ID, "name", pkg.Name)
	return nil
}

func (s *packageService) Update(ctx context.Context, id string, updates *model.PackageUpdate) (*model.Package, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Package ID is required")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Package update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Package validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check package existence")
	}

	s.sanitizeUpdate(updates)
	merged := s.merge(existing, updates)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Package validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Package validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	merged.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, id, merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update package")
	}

	s.publisher.Publish(ctx, events.TypePackageUpdated, id, merged)
	s.cfg.Log.Info("Package updated", "id", id, "name", merged.Name)
	return merged, nil
}

// Delete removes the record permanently. Special fares deactivate instead;
// packages have always been hard-deleted and the admin UI relies on that.
func (s *packageService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Package ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete package")
	}

	s.publisher.Publish(ctx, events.TypePackageDeleted, id, nil)
	s.cfg.Log.Info("Package deleted", "id", id)
	return nil
}

func (s *packageService) mapRepoError(err error, id string, internalMsg string) error {
	if errors.Is(err, packageerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Package", id)
	}
	if errors.Is(err, packageerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid package ID format")
	}
	s.cfg.Log.Error(internalMsg, "id", id, "error", err)
	return apperrors.Internal(internalMsg, err)
}

func (s *packageService) sanitize(pkg *model.Package) {
	pkg.Name = sanitizer.NormalizeName(pkg.Name)
	pkg.Description = sanitizer.TrimAndNormalize(pkg.Description)
	pkg.Duration = sanitizer.TrimAndNormalize(pkg.Duration)
	pkg.Destinations = sanitizer.NormalizeDestinations(pkg.Destinations)
	pkg.Tags = sanitizer.NormalizeTags(pkg.Tags)
	pkg.Highlights = sanitizer.NormalizeTags(pkg.Highlights)
	pkg.Images = sanitizer.NormalizeImageURLs(pkg.Images)
	pkg.Contact.Phone = sanitizer.NormalizePhone(pkg.Contact.Phone)
	pkg.Contact.WhatsApp = sanitizer.NormalizePhone(pkg.Contact.WhatsApp)
	pkg.Contact.Email = sanitizer.NormalizeEmail(pkg.Contact.Email)
}

func (s *packageService) sanitizeUpdate(updates *model.PackageUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Description != "" {
		updates.Description = sanitizer.TrimAndNormalize(updates.Description)
	}
	if updates.Duration != "" {
		updates.Duration = sanitizer.TrimAndNormalize(updates.Duration)
	}
	if updates.Destinations != nil {
		updates.Destinations = sanitizer.NormalizeDestinations(updates.Destinations)
	}
	if updates.Images != nil {
		normalized := sanitizer.NormalizeImageURLs(*updates.Images)
		updates.Images = &normalized
	}
	if updates.Contact != nil {
		updates.Contact.Phone = sanitizer.NormalizePhone(updates.Contact.Phone)
		updates.Contact.WhatsApp = sanitizer.NormalizePhone(updates.Contact.WhatsApp)
		updates.Contact.Email = sanitizer.NormalizeEmail(updates.Contact.Email)
	}
}

func (s *packageService) applyDefaults(pkg *model.Package) {
	if pkg.MinPersons == 0 {
		pkg.MinPersons = 1
	}
	if pkg.Inclusions == nil {
		pkg.Inclusions = []string{}
	}
	if pkg.Exclusions == nil {
		pkg.Exclusions = []string{}
	}
	if pkg.Images == nil {
		pkg.Images = []string{}
	}
}

func (s *packageService) merge(existing *model.Package, updates *model.PackageUpdate) *model.Package {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Duration != "" {
		merged.Duration = updates.Duration
	}
	if updates.Destinations != nil {
		merged.Destinations = updates.Destinations
	}
	if updates.Accommodation != nil {
		merged.Accommodation = *updates.Accommodation
	}
	if updates.Inclusions != nil {
		merged.Inclusions = *updates.Inclusions
	}
	if updates.Exclusions != nil {
		merged.Exclusions = *updates.Exclusions
	}
	if updates.Itinerary != nil {
		merged.Itinerary = *updates.Itinerary
	}
	if updates.OnwardFlight != nil {
		merged.OnwardFlight = updates.OnwardFlight
	}
	if updates.ReturnFlight != nil {
		merged.ReturnFlight = updates.ReturnFlight
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.Market != "" {
		merged.Market = updates.Market
	}
	if updates.Tags != nil {
		merged.Tags = *updates.Tags
	}
	if updates.Highlights != nil {
		merged.Highlights = *updates.Highlights
	}
	if updates.MinPersons != nil {
		merged.MinPersons = *updates.MinPersons
	}
	if updates.DepartureDates != nil {
		merged.DepartureDates = *updates.DepartureDates
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.IsFeatured != nil {
		merged.IsFeatured = *updates.IsFeatured
	}
	if updates.Contact != nil {
		merged.Contact = *updates.Contact
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
