package db

import (
	"path/filepath"
	"testing"
)

func TestSaveAndQueryPredictions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	if err := InitDB(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer Close()

	first := PredictionRecord{
		Bedrooms:            3,
		Bathrooms:           2.0,
		Area:                1500,
		Age:                 10,
		Quality:             7,
		Garage:              2,
		Neighborhood:        "Good Area",
		NeighborhoodEncoded: 10,
		Price:               187500,
		Lower:               168487,
		Upper:               206513,
	}
	second := first
	second.Neighborhood = "Premium Area"
	second.NeighborhoodEncoded = 15
	second.Price = 243000

	if err := SavePrediction(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SavePrediction(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := RecentPredictions(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].NeighborhoodEncoded != 15 {
		t.Fatalf("expected newest record first, got %+v", records[0])
	}
	if records[1].Price != 187500 {
		t.Fatalf("unexpected price: %v", records[1].Price)
	}
	if records[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestQueriesRequireInit(t *testing.T) {
	Close()

	if err := SavePrediction(PredictionRecord{}); err == nil {
		t.Fatal("expected error before InitDB")
	}
	if _, err := RecentPredictions(5); err == nil {
		t.Fatal("expected error before InitDB")
	}
}
