package response_models

type CategoryAvailability struct {
	CategoryID      string `json:"categoryId"`
	CategoryName    string `json:"categoryName"`
	UnitType        string `json:"unitType"`
	Facilities      int64  `json:"facilities"`
	AvailablePlaces int64  `json:"availablePlaces"`
	TotalPlaces     int64  `json:"totalPlaces"`
}

type DashboardReport struct {
	Carriers         int64                  `json:"carriers"`
	ActiveCarriers   int64                  `json:"activeCarriers"`
	Facilities       int64                  `json:"facilities"`
	ActiveFacilities int64                  `json:"activeFacilities"`
	Accounts         int64                  `json:"accounts,omitempty"`
	TotalPlaces      int64                  `json:"totalPlaces"`
	OccupiedPlaces   int64                  `json:"occupiedPlaces"`
	OccupancyRate    int                    `json:"occupancyRate"`
	TotalHours       int64                  `json:"totalHours"`
	AvailableHours   int64                  `json:"availableHours"`
	UtilizationRate  int                    `json:"utilizationRate"`
	Categories       []CategoryAvailability `json:"categories"`
	SearchesLast7d   int64                  `json:"searchesLast7d"`
}
