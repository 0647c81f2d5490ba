package models

import (
	"strconv"
	"strings"
)

const DefaultMapBaseURL = "https://www.google.com/maps"

type Location struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

/*
Coordinates returns "lat,lng" as used by the mapping service.
*/
func (l Location) Coordinates() string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}

/*
MapURL builds the link opened when a visitor clicks a location. An empty
baseURL uses Google Maps.
*/
func (l Location) MapURL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultMapBaseURL
	}

	sep := "?"

	if strings.Contains(baseURL, "?") {
		sep = "&"
	}

	return baseURL + sep + "q=" + l.Coordinates()
}
