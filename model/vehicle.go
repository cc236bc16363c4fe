package model

import "time"

const (
	VehicleAvailable   = "available"
	VehicleUnavailable = "unavailable"
)

type Brand struct {
	ID             int64     `json:"id"`
	BrandName      string    `json:"brand_name"`
	SecureURLImage *string   `json:"secure_url_image,omitempty"`
	PublicURLImage *string   `json:"public_url_image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Vehicle struct {
	ID                 int64     `json:"id"`
	BrandID            int64     `json:"brand_id"`
	VehicleType        string    `json:"vehicle_type"`
	VehicleName        string    `json:"vehicle_name"`
	RentalPrice        float64   `json:"rental_price"`
	AvailabilityStatus string    `json:"availability_status"`
	Year               int       `json:"year"`
	Seats              int       `json:"seats"`
	HorsePower         int       `json:"horse_power"`
	Description        string    `json:"description"`
	SpecificationList  string    `json:"specification_list"`
	SecureURLImage     *string   `json:"secure_url_image,omitempty"`
	PublicURLImage     *string   `json:"public_url_image,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// VehiclePatch holds optional fields for partial vehicle updates; nil means
// keep the current value.
type VehiclePatch struct {
	BrandID            *int64   `json:"brand_id"`
	VehicleType        *string  `json:"vehicle_type"`
	VehicleName        *string  `json:"vehicle_name"`
	RentalPrice        *float64 `json:"rental_price"`
	AvailabilityStatus *string  `json:"availability_status"`
	Year               *int     `json:"year"`
	Seats              *int     `json:"seats"`
	HorsePower         *int     `json:"horse_power"`
	Description        *string  `json:"description"`
	SpecificationList  *string  `json:"specification_list"`
	SecureURLImage     *string  `json:"-"`
	PublicURLImage     *string  `json:"-"`
}

type Banner struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	VehicleID      int64     `json:"vehicle_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	SecureURLImage *string   `json:"secure_url_image,omitempty"`
	PublicURLImage *string   `json:"public_url_image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
