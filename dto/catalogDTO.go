package dto

type CreateBrandRequest struct {
	BrandName string `form:"brand_name" binding:"required"`
}

type UpdateBrandRequest struct {
	BrandName *string `form:"brand_name"`
}

type CreateVehicleRequest struct {
	BrandID           int64   `form:"brand_id" binding:"required"`
	VehicleType       string  `form:"vehicle_type" binding:"required"`
	VehicleName       string  `form:"vehicle_name" binding:"required"`
	RentalPrice       float64 `form:"rental_price" binding:"required"`
	Year              int     `form:"year" binding:"required"`
	Seats             int     `form:"seats" binding:"required"`
	HorsePower        int     `form:"horse_power" binding:"required"`
	Description       string  `form:"description" binding:"required"`
	SpecificationList string  `form:"specification_list" binding:"required"`
}

type CreateBannerRequest struct {
	VehicleID   int64  `form:"vehicle_id" binding:"required"`
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
}

type UpdateBannerRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
}
