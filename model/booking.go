package model

import "time"

const (
	RentalPending   = "pending"
	RentalConfirmed = "confirmed"
	RentalOngoing   = "ongoing"
	RentalCompleted = "completed"
	RentalCancelled = "cancelled"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRejected = "rejected"

	PaymentMethodTransfer = "bank_transfer"
	PaymentMethodCash     = "cash"
)

type Booking struct {
	ID               int64     `json:"booking_id"`
	UserID           int64     `json:"user_id"`
	VehicleID        int64     `json:"vehicle_id"`
	RentalPeriod     int       `json:"rental_period"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	DeliveryLocation int64     `json:"delivery_location"`
	RentalStatus     string    `json:"rental_status"`
	TotalPrice       float64   `json:"total_price"`
	BankTransfer     int64     `json:"bank_transfer"`
	Notes            *string   `json:"notes,omitempty"`
	SecureURLImage   *string   `json:"secure_url_image,omitempty"`
	PublicURLImage   *string   `json:"public_url_image,omitempty"`
	PaymentProof     string    `json:"payment_proof"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BookingDetail is a booking joined with its related rows, the shape the
// booking endpoints respond with.
type BookingDetail struct {
	Booking
	User     *User        `json:"user,omitempty"`
	Vehicle  *Vehicle     `json:"vehicle,omitempty"`
	Delivery *Address     `json:"delivery,omitempty"`
	Bank     *BankAccount `json:"bank,omitempty"`
}

type Rental struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	VehicleID          int64     `json:"vehicle_id"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	DeliveryLocationID int64     `json:"delivery_location_id"`
	RentalStatus       string    `json:"rental_status"`
	TotalPrice         float64   `json:"total_price"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Transaction struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	RentalID        int64     `json:"rental_id"`
	PaymentStatus   string    `json:"payment_status"`
	TransactionDate time.Time `json:"transaction_date"`
	PaymentMethod   string    `json:"payment_method"`
	TotalAmount     float64   `json:"total_amount"`
	SecureURLImage  *string   `json:"secure_url_image,omitempty"`
	PublicURLImage  *string   `json:"public_url_image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
