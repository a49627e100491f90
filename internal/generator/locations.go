package generator

import "kp-dashboard/internal/models"

// Locations is the built-in place table offered by the dashboard.
var Locations = []models.Location{
	{Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777, Timezone: "Asia/Kolkata"},
	{Name: "Delhi", Latitude: 28.6139, Longitude: 77.2090, Timezone: "Asia/Kolkata"},
	{Name: "Chennai", Latitude: 13.0827, Longitude: 80.2707, Timezone: "Asia/Kolkata"},
	{Name: "Kolkata", Latitude: 22.5726, Longitude: 88.3639, Timezone: "Asia/Kolkata"},
	{Name: "New York", Latitude: 40.7128, Longitude: -74.0060, Timezone: "America/New_York"},
	{Name: "London", Latitude: 51.5074, Longitude: -0.1278, Timezone: "Europe/London"},
}

// LocationNames returns the names in table order for selector widgets.
func LocationNames() []string {
	names := make([]string, len(Locations))
	for i, loc := range Locations {
		names[i] = loc.Name
	}
	return names
}

// LocationByName finds a built-in location.
func LocationByName(name string) (models.Location, bool) {
	for _, loc := range Locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return models.Location{}, false
}
