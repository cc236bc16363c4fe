package dto

type CreateBookingRequest struct {
	VehicleID        int64   `json:"vehicle_id" binding:"required"`
	StartDate        string  `json:"start_date" binding:"required"`
	EndDate          string  `json:"end_date" binding:"required"`
	DeliveryLocation int64   `json:"delivery_location" binding:"required"`
	BankTransfer     int64   `json:"bank_transfer" binding:"required"`
	Notes            *string `json:"notes"`
}

type UpdateBookingAdminRequest struct {
	RentalStatus *string  `json:"rental_status"`
	PaymentProof *string  `json:"payment_proof"`
	TotalPrice   *float64 `json:"total_price"`
}

type CreateRentalRequest struct {
	VehicleID          int64   `json:"vehicle_id" binding:"required"`
	StartDate          string  `json:"start_date" binding:"required"`
	EndDate            string  `json:"end_date" binding:"required"`
	DeliveryLocationID int64   `json:"delivery_location_id" binding:"required"`
	RentalStatus       string  `json:"rental_status"`
	TotalPrice         float64 `json:"total_price" binding:"required"`
}

type UpdateRentalRequest struct {
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	RentalStatus *string  `json:"rental_status"`
	TotalPrice   *float64 `json:"total_price"`
}

type CreateTransactionRequest struct {
	RentalID      int64   `form:"rental_id" binding:"required"`
	PaymentStatus string  `form:"payment_status" binding:"required"`
	PaymentMethod string  `form:"payment_method" binding:"required"`
	TotalAmount   float64 `form:"total_amount" binding:"required"`
}

type UpdateTransactionRequest struct {
	PaymentStatus *string  `json:"payment_status"`
	PaymentMethod *string  `json:"payment_method"`
	TotalAmount   *float64 `json:"total_amount"`
}
