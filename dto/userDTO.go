package dto

type CreateUserRequest struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username *string `form:"username"`
	Phone    *string `form:"phone"`
}

type CreateDetailUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Gender   string `json:"gender" binding:"required,oneof=male female"`
	DOB      string `json:"dob" binding:"required"`
}

type UpdateDetailUserRequest struct {
	FullName *string `json:"full_name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Gender   *string `json:"gender"`
	DOB      *string `json:"dob"`
}

type CreateAddressRequest struct {
	FullName    string   `json:"full_name" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Phone       *string  `json:"phone"`
	FullAddress *string  `json:"full_address"`
	URLMaps     *string  `json:"url_maps"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type CreateAddressDeliveryRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type UpdateAddressDeliveryRequest struct {
	FullName *string `json:"full_name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

type CreateBankAccountRequest struct {
	NameBank string `json:"name_bank" binding:"required"`
	Number   string `json:"number" binding:"required"`
}

type UpdateBankAccountRequest struct {
	NameBank *string `json:"name_bank"`
	Number   *string `json:"number"`
}
