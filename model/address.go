package model

import "time"

// Address is a delivery destination a booking can be sent to.
type Address struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	FullName    string    `json:"full_name"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone,omitempty"`
	FullAddress *string   `json:"full_address,omitempty"`
	URLMaps     *string   `json:"url_maps,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AddressPatch holds optional fields for partial address updates.
type AddressPatch struct {
	FullName    *string  `json:"full_name"`
	Address     *string  `json:"address"`
	Phone       *string  `json:"phone"`
	FullAddress *string  `json:"full_address"`
	URLMaps     *string  `json:"url_maps"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// AddressDelivery is the lighter contact record used by the delivery crew.
type AddressDelivery struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BankAccount is a destination account shown to renters paying by transfer.
type BankAccount struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	NameBank  string    `json:"name_bank"`
	Number    string    `json:"number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
