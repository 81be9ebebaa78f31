package service

import (
	"context"
	"errors"
	"time"

	fareerrors "roamly/internal/specialfares/errors"
	"roamly/internal/specialfares/repository"
	"roamly/internal/specialfares/validator"
	"roamly/pkg/config"
	apperrors "roamly/pkg/errors"
	"roamly/pkg/events"
	"roamly/pkg/model"
	"roamly/pkg/sanitizer"
)

type SpecialFareService interface {
	List(ctx context.Context, filter repository.ListFilter) ([]*model.SpecialFare, error)
	Create(ctx context.Context, fare *model.SpecialFare) error
	Update(ctx context.Context, id string, updates *model.SpecialFareUpdate) (*model.SpecialFare, error)
	Deactivate(ctx context.Context, id string) error
}

type specialFareService struct {
	repo      repository.SpecialFareRepository
	validator *validator.SpecialFareValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewSpecialFareService(
	repo repository.SpecialFareRepository,
	validator *validator.SpecialFareValidator,
	publisher events.Publisher,
	cfg *config.Config,
) SpecialFareService {
	return &specialFareService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *specialFareService) List(ctx context.Context, filter repository.ListFilter) ([]*model.SpecialFare, error) {
	filter.Limit = s.cfg.NormalizeListLimit(filter.Limit)

	fares, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list special fares", "error", err)
		return nil, apperrors.Internal("Failed to retrieve special fares", err)
	}
	if fares == nil {
		fares = []*model.SpecialFare{}
	}

	now := s.now()
	for _, fare := range fares {
		fare.RefreshDaysRemaining(now)
	}
	return fares, nil
}

func (s *specialFareService) Create(ctx context.Context, fare *model.SpecialFare) error {
	s.sanitize(fare)

	if missing := validator.MissingCreateFields(fare); len(missing) > 0 {
		return apperrors.Validation("Missing required fields", map[string]any{
			"missing": missing,
		})
	}

	s.applyDefaults(fare)
	fare.ApplyDiscount()

	if err := s.validator.Validate(fare); err != nil {
		s.cfg.Log.Warn("Special fare validation failed", "title", fare.Title, "error", err)
		return apperrors.Validation("Special fare validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	now := s.now()
	fare.CreatedAt = now
	fare.UpdatedAt = now

	if err := s.repo.Create(ctx, fare); err != nil {
		s.cfg.Log.Error("Failed to create special fare", "title", fare.Title, "error", err)
		return apperrors.Internal("Failed to create special fare", err)
	}

	fare.RefreshDaysRemaining(now)

	s.publisher.Publish(ctx, events.TypeFareCreated, fare.ID, fare)
	s.cfg.Log.Info("Special fare created", "id", fare.ID, "title", fare.Title)
	return nil
}

func (s *specialFareService) Update(ctx context.Context, id string, updates *model.SpecialFareUpdate) (*model.SpecialFare, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Special fare ID is required")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Special fare update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Special fare validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check special fare existence")
	}

	s.sanitizeUpdate(updates)
	merged := s.merge(existing, updates)
	merged.ApplyDiscount()

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Special fare validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Special fare validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	merged.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, id, merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update special fare")
	}

	merged.RefreshDaysRemaining(s.now())

	s.publisher.Publish(ctx, events.TypeFareUpdated, id, merged)
	s.cfg.Log.Info("Special fare updated", "id", id, "title", merged.Title)
	return merged, nil
}

// Deactivate is the delete operation for special fares: the record stays in
// storage with isActive false. Packages hard-delete instead.
func (s *specialFareService) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Special fare ID is required")
	}

	if err := s.repo.Deactivate(ctx, id, s.now()); err != nil {
		return s.mapRepoError(err, id, "Failed to delete special fare")
	}

	s.publisher.Publish(ctx, events.TypeFareDeactivated, id, nil)
	s.cfg.Log.Info("Special fare deactivated", "id", id)
	return nil
}

func (s *specialFareService) mapRepoError(err error, id string, internalMsg string) error {
	if errors.Is(err, fareerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Special fare", id)
	}
	if errors.Is(err, fareerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid special fare ID format")
	}
	s.cfg.Log.Error(internalMsg, "id", id, "error", err)
	return apperrors.Internal(internalMsg, err)
}

func (s *specialFareService) sanitize(fare *model.SpecialFare) {
	fare.Title = sanitizer.NormalizeName(fare.Title)
	fare.Subtitle = sanitizer.TrimAndNormalize(fare.Subtitle)
	fare.Description = sanitizer.TrimAndNormalize(fare.Description)
	fare.Inclusions = sanitizer.NormalizeStringSlice(fare.Inclusions, sanitizer.TrimAndNormalize)
	fare.Exclusions = sanitizer.NormalizeStringSlice(fare.Exclusions, sanitizer.TrimAndNormalize)
	fare.Images = sanitizer.NormalizeImageURLs(fare.Images)
	sanitizeCities(fare.DepartureCities)
	sanitizeCities(fare.ArrivalCities)
}

func (s *specialFareService) sanitizeUpdate(updates *model.SpecialFareUpdate) {
	if updates.Title != "" {
		updates.Title = sanitizer.NormalizeName(updates.Title)
	}
	if updates.Subtitle != nil {
		trimmed := sanitizer.TrimAndNormalize(*updates.Subtitle)
		updates.Subtitle = &trimmed
	}
	if updates.Description != "" {
		updates.Description = sanitizer.TrimAndNormalize(updates.Description)
	}
	if updates.Inclusions != nil {
		normalized := sanitizer.NormalizeStringSlice(*updates.Inclusions, sanitizer.TrimAndNormalize)
		updates.Inclusions = &normalized
	}
	if updates.Exclusions != nil {
		normalized := sanitizer.NormalizeStringSlice(*updates.Exclusions, sanitizer.TrimAndNormalize)
		updates.Exclusions = &normalized
	}
	if updates.Images != nil {
		normalized := sanitizer.NormalizeImageURLs(*updates.Images)
		updates.Images = &normalized
	}
	sanitizeCities(updates.DepartureCities)
	sanitizeCities(updates.ArrivalCities)
}

func sanitizeCities(cities []model.CityRef) {
	for i := range cities {
		cities[i].City = sanitizer.NormalizeName(cities[i].City)
		cities[i].Code = sanitizer.TrimAndNormalize(cities[i].Code)
	}
}

func (s *specialFareService) applyDefaults(fare *model.SpecialFare) {
	if fare.Currency == "" {
		fare.Currency = config.DefaultCurrency
	}
	if fare.FareType == "" {
		fare.FareType = "standard"
	}
	if fare.TripType == "" {
		fare.TripType = "return"
	}
	if fare.CancellationPolicy == "" {
		fare.CancellationPolicy = "non-refundable"
	}
	if fare.Inclusions == nil {
		fare.Inclusions = []string{}
	}
	if fare.Exclusions == nil {
		fare.Exclusions = []string{}
	}
	if fare.Images == nil {
		fare.Images = []string{}
	}
}

func (s *specialFareService) merge(existing *model.SpecialFare, updates *model.SpecialFareUpdate) *model.SpecialFare {
	merged := *existing

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.Subtitle != nil {
		merged.Subtitle = *updates.Subtitle
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.OriginalPrice != nil {
		merged.OriginalPrice = *updates.OriginalPrice
	}
	if updates.Currency != "" {
		merged.Currency = updates.Currency
	}
	if updates.Legs != nil {
		merged.Legs = *updates.Legs
	}
	if updates.ValidFrom != nil {
		merged.ValidFrom = *updates.ValidFrom
	}
	if updates.ValidTo != nil {
		merged.ValidTo = *updates.ValidTo
	}
	if updates.DepartureCities != nil {
		merged.DepartureCities = updates.DepartureCities
	}
	if updates.ArrivalCities != nil {
		merged.ArrivalCities = updates.ArrivalCities
	}
	if updates.FareType != "" {
		merged.FareType = updates.FareType
	}
	if updates.TripType != "" {
		merged.TripType = updates.TripType
	}
	if updates.Inclusions != nil {
		merged.Inclusions = *updates.Inclusions
	}
	if updates.Exclusions != nil {
		merged.Exclusions = *updates.Exclusions
	}
	if updates.CancellationPolicy != "" {
		merged.CancellationPolicy = updates.CancellationPolicy
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.IsFeatured != nil {
		merged.IsFeatured = *updates.IsFeatured
	}
	if updates.IsLimitedTime != nil {
		merged.IsLimitedTime = *updates.IsLimitedTime
	}
	if updates.IsBestSeller != nil {
		merged.IsBestSeller = *updates.IsBestSeller
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
