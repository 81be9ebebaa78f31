package model

import "time"

// Package is a travel offering shown on the public site and managed through
// the admin panel. Field names mirror the stored document shape.
type Package struct {
	ID             string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string         `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Description    string         `json:"description" bson:"description" validate:"required"`
	Price          float64        `json:"price" bson:"price" validate:"required,gt=0"`
	Duration       string         `json:"duration" bson:"duration" validate:"required,max=100"`
	Destinations   []string       `json:"destinations" bson:"destinations" validate:"required,min=1,dive,required"`
	Accommodation  Accommodation  `json:"accommodation,omitempty" bson:"accommodation,omitempty"`
	Inclusions     []string       `json:"inclusions,omitempty" bson:"inclusions"`
	Exclusions     []string       `json:"exclusions,omitempty" bson:"exclusions"`
	Itinerary      []ItineraryDay `json:"itinerary,omitempty" bson:"itinerary" validate:"omitempty,dive"`
	OnwardFlight   *FlightSegment `json:"onwardFlight,omitempty" bson:"onwardFlight,omitempty"`
	ReturnFlight   *FlightSegment `json:"returnFlight,omitempty" bson:"returnFlight,omitempty"`
	Images         []string       `json:"images,omitempty" bson:"images"`
	Market         string         `json:"market,omitempty" bson:"market"`
	Tags           []string       `json:"tags,omitempty" bson:"tags"`
	Highlights     []string       `json:"highlights,omitempty" bson:"highlights"`
	MinPersons     int            `json:"minPersons" bson:"minPersons" validate:"omitempty,min=1"`
	DepartureDates []string       `json:"departureDates,omitempty" bson:"departureDates"`
	IsActive       bool           `json:"isActive" bson:"isActive"`
	IsFeatured     bool           `json:"isFeatured" bson:"isFeatured"`
	Contact        ContactInfo    `json:"contact,omitempty" bson:"contact,omitempty"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt" validate:"omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt" validate:"omitempty"`
}

type Accommodation struct {
	Type      string `json:"type,omitempty" bson:"type"`
	Name      string `json:"name,omitempty" bson:"name"`
	Rating    int    `json:"rating,omitempty" bson:"rating" validate:"omitempty,min=1,max=5"`
	RoomType  string `json:"roomType,omitempty" bson:"roomType"`
	Occupancy string `json:"occupancy,omitempty" bson:"occupancy"`
}

type ItineraryDay struct {
	Day         int      `json:"day" bson:"day" validate:"required,min=1"`
	Title       string   `json:"title" bson:"title" validate:"required"`
	Description string   `json:"description,omitempty" bson:"description"`
	Attractions []string `json:"attractions,omitempty" bson:"attractions"`
	Activities  []string `json:"activities,omitempty" bson:"activities"`
	Meals       []string `json:"meals,omitempty" bson:"meals"`
	Overnight   string   `json:"overnight,omitempty" bson:"overnight"`
}

type FlightSegment struct {
	Airline       string `json:"airline,omitempty" bson:"airline"`
	FlightNumber  string `json:"flightNumber,omitempty" bson:"flightNumber"`
	DepartureCity string `json:"departureCity,omitempty" bson:"departureCity"`
	ArrivalCity   string `json:"arrivalCity,omitempty" bson:"arrivalCity"`
	DepartureTime string `json:"departureTime,omitempty" bson:"departureTime"`
	ArrivalTime   string `json:"arrivalTime,omitempty" bson:"arrivalTime"`
}

type ContactInfo struct {
	Phone    string `json:"phone,omitempty" bson:"phone"`
	WhatsApp string `json:"whatsapp,omitempty" bson:"whatsapp"`
	Email    string `json:"email,omitempty" bson:"email" validate:"omitempty,email"`
}

// PackageUpdate carries the fields an admin PUT may change. Nil/empty fields
// keep their stored values; the merge happens in the service layer.
type PackageUpdate struct {
	Name           string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description    string          `json:"description,omitempty"`
	Price          *float64        `json:"price,omitempty" validate:"omitempty,gt=0"`
	Duration       string          `json:"duration,omitempty" validate:"omitempty,max=100"`
	Destinations   []string        `json:"destinations,omitempty" validate:"omitempty,min=1,dive,required"`
	Accommodation  *Accommodation  `json:"accommodation,omitempty"`
	Inclusions     *[]string       `json:"inclusions,omitempty"`
	Exclusions     *[]string       `json:"exclusions,omitempty"`
	Itinerary      *[]ItineraryDay `json:"itinerary,omitempty" validate:"omitempty,dive"`
	OnwardFlight   *FlightSegment  `json:"onwardFlight,omitempty"`
	ReturnFlight   *FlightSegment  `json:"returnFlight,omitempty"`
	Images         *[]string       `json:"images,omitempty"`
	Market         string          `json:"market,omitempty"`
	Tags           *[]string       `json:"tags,omitempty"`
	Highlights     *[]string       `json:"highlights,omitempty"`
	MinPersons     *int            `json:"minPersons,omitempty" validate:"omitempty,min=1"`
	DepartureDates *[]string       `json:"departureDates,omitempty"`
	IsActive       *bool           `json:"isActive,omitempty"`
	IsFeatured     *bool           `json:"isFeatured,omitempty"`
	Contact        *ContactInfo    `json:"contact,omitempty"`
}
