package request_models

type CreateCarrierRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=200"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"omitempty,max=50"`
	Street     string `json:"street" binding:"omitempty,max=200"`
	City       string `json:"city" binding:"omitempty,max=100"`
	PostalCode string `json:"postalCode" binding:"omitempty,max=10"`
	IsActive   *bool  `json:"isActive"`
}

type UpdateCarrierRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=200"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Street     *string `json:"street" binding:"omitempty,max=200"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	PostalCode *string `json:"postalCode" binding:"omitempty,max=10"`
	IsActive   *bool   `json:"isActive"`
}
