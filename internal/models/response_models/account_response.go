package response_models

type AccountLoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int64           `json:"expires_in"`
	Account   AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	IsActive   bool     `json:"isActive"`
	CarrierIDs []string `json:"carrierIds,omitempty"`
}
