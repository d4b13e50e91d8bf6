package response_models

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UnitType    string  `json:"unitType"`
	ParentID    *string `json:"parentId"`
	IsActive    bool    `json:"isActive"`
}
