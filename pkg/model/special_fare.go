package model

import (
	"math"
	"time"
)

// SpecialFare is a discounted, time-bounded flight offer. DiscountAmount and
// DiscountPercentage are derived and recomputed on every save; DaysRemaining
// is derived on every read. Deletion is a soft delete: IsActive flips to
// false and the record stays in storage.
type SpecialFare struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title              string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Subtitle           string    `json:"subtitle,omitempty" bson:"subtitle"`
	Description        string    `json:"description" bson:"description" validate:"required"`
	Price              float64   `json:"price" bson:"price" validate:"required,gt=0"`
	OriginalPrice      float64   `json:"originalPrice" bson:"originalPrice" validate:"required,gt=0,gtefield=Price"`
	DiscountAmount     float64   `json:"discountAmount" bson:"discountAmount"`
	DiscountPercentage int       `json:"discountPercentage" bson:"discountPercentage"`
	Currency           string    `json:"currency" bson:"currency" validate:"omitempty,len=3"`
	Legs               []FareLeg `json:"legs,omitempty" bson:"legs" validate:"omitempty,dive"`
	ValidFrom          FlexTime  `json:"validFrom" bson:"validFrom" validate:"required"`
	ValidTo            FlexTime  `json:"validTo" bson:"validTo" validate:"required"`
	DepartureCities    []CityRef `json:"departureCities" bson:"departureCities" validate:"required,min=1,dive"`
	ArrivalCities      []CityRef `json:"arrivalCities" bson:"arrivalCities" validate:"required,min=1,dive"`
	FareType           string    `json:"fareType" bson:"fareType" validate:"omitempty,oneof=sale seasonal flash standard"`
	TripType           string    `json:"tripType" bson:"tripType" validate:"omitempty,oneof=oneway return"`
	Inclusions         []string  `json:"inclusions,omitempty" bson:"inclusions"`
	Exclusions         []string  `json:"exclusions,omitempty" bson:"exclusions"`
	CancellationPolicy string    `json:"cancellationPolicy" bson:"cancellationPolicy" validate:"omitempty,oneof=refundable non-refundable partial"`
	Images             []string  `json:"images,omitempty" bson:"images"`
	IsActive           bool      `json:"isActive" bson:"isActive"`
	IsFeatured         bool      `json:"isFeatured" bson:"isFeatured"`
	IsLimitedTime      bool      `json:"isLimitedTime" bson:"isLimitedTime"`
	IsBestSeller       bool      `json:"isBestSeller" bson:"isBestSeller"`
	DaysRemaining      int       `json:"daysRemaining" bson:"-"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt" validate:"omitempty"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt" validate:"omitempty"`
}

type FareLeg struct {
	Airline       string `json:"airline" bson:"airline" validate:"required"`
	FlightNumber  string `json:"flightNumber,omitempty" bson:"flightNumber"`
	From          string `json:"from,omitempty" bson:"from"`
	To            string `json:"to,omitempty" bson:"to"`
	DepartureTime string `json:"departureTime,omitempty" bson:"departureTime"`
	ArrivalTime   string `json:"arrivalTime,omitempty" bson:"arrivalTime"`
	Baggage       string `json:"baggage,omitempty" bson:"baggage"`
}

type CityRef struct {
	City string `json:"city" bson:"city" validate:"required"`
	Code string `json:"code,omitempty" bson:"code"`
}

// SpecialFareUpdate carries the fields an admin PUT may change; the merge
// onto the stored fare happens in the service layer.
type SpecialFareUpdate struct {
	Title              string     `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Subtitle           *string    `json:"subtitle,omitempty"`
	Description        string     `json:"description,omitempty"`
	Price              *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice      *float64   `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Currency           string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	Legs               *[]FareLeg `json:"legs,omitempty" validate:"omitempty,dive"`
	ValidFrom          *FlexTime  `json:"validFrom,omitempty"`
	ValidTo            *FlexTime  `json:"validTo,omitempty"`
	DepartureCities    []CityRef  `json:"departureCities,omitempty" validate:"omitempty,min=1,dive"`
	ArrivalCities      []CityRef  `json:"arrivalCities,omitempty" validate:"omitempty,min=1,dive"`
	FareType           string     `json:"fareType,omitempty" validate:"omitempty,oneof=sale seasonal flash standard"`
	TripType           string     `json:"tripType,omitempty" validate:"omitempty,oneof=oneway return"`
	Inclusions         *[]string  `json:"inclusions,omitempty"`
	Exclusions         *[]string  `json:"exclusions,omitempty"`
	CancellationPolicy string     `json:"cancellationPolicy,omitempty" validate:"omitempty,oneof=refundable non-refundable partial"`
	Images             *[]string  `json:"images,omitempty"`
	IsActive           *bool      `json:"isActive,omitempty"`
	IsFeatured         *bool      `json:"isFeatured,omitempty"`
	IsLimitedTime      *bool      `json:"isLimitedTime,omitempty"`
	IsBestSeller       *bool      `json:"isBestSeller,omitempty"`
}

// ApplyDiscount recomputes the derived discount fields from the current
// prices. Called on every create and update that touches either price.
func (sf *SpecialFare) ApplyDiscount() {
	if sf.OriginalPrice <= 0 {
		sf.DiscountAmount = 0
		sf.DiscountPercentage = 0
		return
	}
	sf.DiscountAmount = sf.OriginalPrice - sf.Price
	sf.DiscountPercentage = int(math.Round(sf.DiscountAmount / sf.OriginalPrice * 100))
}

// DaysRemaining returns whole days until validTo, ceiling-rounded, never
// negative.
func DaysRemaining(validTo time.Time, now time.Time) int {
	if !validTo.After(now) {
		return 0
	}
	return int(math.Ceil(validTo.Sub(now).Hours() / 24))
}

// Refresh recomputes the read-side derived value.
func (sf *SpecialFare) RefreshDaysRemaining(now time.Time) {
	sf.DaysRemaining = DaysRemaining(sf.ValidTo.Time, now)
}
