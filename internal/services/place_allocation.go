package services

import (
	"fmt"

	"freiplatz/internal/models/db_models"
	"freiplatz/pkg/utils"
)

// planAllocation returns min(requested, maxCapacity-current) copies of
// template named "Platz n", n continuing after current. It fails with
// utils.ErrCapacityExceeded when nothing is left.
func planAllocation(template db_models.Place, requested, maxCapacity, current int) ([]db_models.Place, error) {
	remaining := maxCapacity - current
	if remaining <= 0 {
		return nil, fmt.Errorf("%w: %d of %d places in use", utils.ErrCapacityExceeded, current, maxCapacity)
	}

	n := requested
	if n > remaining {
		n = remaining
	}

	places := make([]db_models.Place, 0, n)
	for i := 1; i <= n; i++ {
		p := template
		p.Name = fmt.Sprintf("Platz %d", current+i)
		places = append(places, p)
	}
	return places, nil
}
