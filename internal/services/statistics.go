package services

import (
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

func aggregatePlaceStatistics(rows []repositories.PlaceStatRow) response_models.PlaceStatistics {
	var (
		total, occupied int64
		gender          response_models.GenderDistribution
		categories      = []response_models.PlaceCategoryCount{}
		index           = map[string]int{}
	)

	for _, r := range rows {
		total += r.Total
		occupied += r.Occupied

		switch r.GenderSuitability {
		case db_models.GenderMale:
			gender.MaleOnly += int(r.Total)
		case db_models.GenderFemale:
			gender.FemaleOnly += int(r.Total)
		default:
			gender.AllGender += int(r.Total)
		}

		key := r.CategoryID.String()
		i, ok := index[key]
		if !ok {
			index[key] = len(categories)
			categories = append(categories, response_models.PlaceCategoryCount{
				CategoryID:   key,
				CategoryName: r.CategoryName,
			})
			i = len(categories) - 1
		}
		categories[i].Count += int(r.Total)
	}

	return response_models.PlaceStatistics{
		TotalPlaces:          int(total),
		OccupiedPlaces:       int(occupied),
		AvailablePlaces:      int(total - occupied),
		OccupancyRate:        utils.Percent(occupied, total),
		GenderDistribution:   gender,
		CategoryDistribution: categories,
	}
}

// Gender distribution of hours sums total hours per suitability.
func aggregateHourStatistics(rows []repositories.HourStatRow) response_models.HourStatistics {
	var (
		total, available int64
		gender           response_models.GenderDistribution
		categories       = []response_models.HourCategorySum{}
		index            = map[string]int{}
	)

	for _, r := range rows {
		total += r.TotalHours
		available += r.AvailableHours

		switch r.GenderSuitability {
		case db_models.GenderMale:
			gender.MaleOnly += int(r.TotalHours)
		case db_models.GenderFemale:
			gender.FemaleOnly += int(r.TotalHours)
		default:
			gender.AllGender += int(r.TotalHours)
		}

		key := r.CategoryID.String()
		i, ok := index[key]
		if !ok {
			index[key] = len(categories)
			categories = append(categories, response_models.HourCategorySum{
				CategoryID:   key,
				CategoryName: r.CategoryName,
			})
			i = len(categories) - 1
		}
		categories[i].TotalHours += int(r.TotalHours)
		categories[i].AvailableHours += int(r.AvailableHours)
	}

	used := total - available
	return response_models.HourStatistics{
		TotalHours:           int(total),
		AvailableHours:       int(available),
		UsedHours:            int(used),
		UtilizationRate:      utils.Percent(used, total),
		GenderDistribution:   gender,
		CategoryDistribution: categories,
	}
}
