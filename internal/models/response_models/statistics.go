package response_models

type GenderDistribution struct {
	MaleOnly   int `json:"maleOnly"`
	FemaleOnly int `json:"femaleOnly"`
	AllGender  int `json:"allGender"`
}

type PlaceCategoryCount struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Count        int    `json:"count"`
}

type PlaceStatistics struct {
	TotalPlaces          int                  `json:"totalPlaces"`
	OccupiedPlaces       int                  `json:"occupiedPlaces"`
	AvailablePlaces      int                  `json:"availablePlaces"`
	OccupancyRate        int                  `json:"occupancyRate"`
	GenderDistribution   GenderDistribution   `json:"genderDistribution"`
	CategoryDistribution []PlaceCategoryCount `json:"categoryDistribution"`
}

type HourCategorySum struct {
	CategoryID     string `json:"categoryId"`
	CategoryName   string `json:"categoryName"`
	TotalHours     int    `json:"totalHours"`
	AvailableHours int    `json:"availableHours"`
}

type HourStatistics struct {
	TotalHours           int                `json:"totalHours"`
	AvailableHours       int                `json:"availableHours"`
	UsedHours            int                `json:"usedHours"`
	UtilizationRate      int                `json:"utilizationRate"`
	GenderDistribution   GenderDistribution `json:"genderDistribution"`
	CategoryDistribution []HourCategorySum  `json:"categoryDistribution"`
}
