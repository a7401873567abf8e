// Package house holds the input record and display derivations for the
// price predictor.
package house

import (
	"fmt"
	"math"
)

// Input bounds shown and enforced on the form.
const (
	MinBedrooms  = 1
	MaxBedrooms  = 10
	MinBathrooms = 0.5
	MaxBathrooms = 10.0
	BathroomStep = 0.5
	MinArea      = 500
	MaxArea      = 20000
	MinAge       = 0
	MaxAge       = 100
	MinQuality   = 1
	MaxQuality   = 10
	MinGarage    = 0
	MaxGarage    = 5
)

// Neighborhoods lists the three selectable choices in display order.
var Neighborhoods = []string{"Average Area", "Good Area", "Premium Area"}

var neighborhoodCodes = map[string]int{
	"Average Area": 5,
	"Good Area":    10,
	"Premium Area": 15,
}

// EncodeNeighborhood maps a neighborhood choice to the numeric code the
// model was trained on.
func EncodeNeighborhood(name string) (int, error) {
	code, ok := neighborhoodCodes[name]
	if !ok {
		return 0, fmt.Errorf("unknown neighborhood %q", name)
	}
	return code, nil
}

// Input is one form submission. Constructed fresh per request and discarded
// after the prediction.
type Input struct {
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	Area         float64 `json:"area"`
	Age          int     `json:"age"`
	Quality      int     `json:"quality"`
	Garage       int     `json:"garage"`
	Neighborhood string  `json:"neighborhood"`
}

// DefaultInput mirrors the form defaults.
func DefaultInput() Input {
	return Input{
		Bedrooms:     3,
		Bathrooms:    2.0,
		Area:         1500,
		Age:          10,
		Quality:      7,
		Garage:       2,
		Neighborhood: "Average Area",
	}
}

func (in Input) Validate() error {
	if in.Bedrooms < MinBedrooms || in.Bedrooms > MaxBedrooms {
		return fmt.Errorf("bedrooms must be between %d and %d", MinBedrooms, MaxBedrooms)
	}
	if in.Bathrooms < MinBathrooms || in.Bathrooms > MaxBathrooms {
		return fmt.Errorf("bathrooms must be between %g and %g", MinBathrooms, MaxBathrooms)
	}
	if halves := in.Bathrooms / BathroomStep; halves != math.Trunc(halves) {
		return fmt.Errorf("bathrooms must be a multiple of %g", BathroomStep)
	}
	if in.Area < MinArea || in.Area > MaxArea {
		return fmt.Errorf("area must be between %d and %d sqft", MinArea, MaxArea)
	}
	if in.Age < MinAge || in.Age > MaxAge {
		return fmt.Errorf("age must be between %d and %d years", MinAge, MaxAge)
	}
	if in.Quality < MinQuality || in.Quality > MaxQuality {
		return fmt.Errorf("quality must be between %d and %d", MinQuality, MaxQuality)
	}
	if in.Garage < MinGarage || in.Garage > MaxGarage {
		return fmt.Errorf("garage capacity must be between %d and %d", MinGarage, MaxGarage)
	}
	if _, err := EncodeNeighborhood(in.Neighborhood); err != nil {
		return err
	}
	return nil
}

// Vector assembles the single-row record in exactly the order of
// featureNames, which must match the names the model was trained on.
func (in Input) Vector(featureNames []string) ([]float64, error) {
	encoded, err := EncodeNeighborhood(in.Neighborhood)
	if err != nil {
		return nil, err
	}

	values := map[string]float64{
		"BedroomAbvGr":         float64(in.Bedrooms),
		"TotalBathrooms":       in.Bathrooms,
		"TotalArea":            in.Area,
		"HouseAge":             float64(in.Age),
		"OverallQual":          float64(in.Quality),
		"GarageCars":           float64(in.Garage),
		"Neighborhood_encoded": float64(encoded),
	}
	if len(featureNames) != len(values) {
		return nil, fmt.Errorf("expected %d feature names, got %d", len(values), len(featureNames))
	}

	vector := make([]float64, len(featureNames))
	for i, name := range featureNames {
		value, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		vector[i] = value
	}
	return vector, nil
}
