package catalog

import (
	"strings"

	"github.com/ukydev/showroom/internal/models"
)

// Filter returns the vehicles whose name, type, description or price
// contains query, ignoring case. A blank query returns vehicles unchanged.
func Filter(vehicles []models.Vehicle, query string) []models.Vehicle {
	if strings.TrimSpace(query) == "" {
		return vehicles
	}
	q := strings.ToLower(query)
	out := []models.Vehicle{}
	for _, v := range vehicles {
		if matches(v, q) {
			out = append(out, v)
		}
	}
	return out
}

func matches(v models.Vehicle, q string) bool {
	for _, field := range []string{v.Name, v.Type, v.Description, v.Price} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
