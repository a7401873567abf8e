package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB initializes the SQLite database
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        bedrooms INTEGER NOT NULL,
        bathrooms REAL NOT NULL,
        area REAL NOT NULL,
        age INTEGER NOT NULL,
        quality INTEGER NOT NULL,
        garage INTEGER NOT NULL,
        neighborhood TEXT NOT NULL,
        neighborhood_encoded INTEGER NOT NULL,
        price REAL NOT NULL,
        lower_bound REAL NOT NULL,
        upper_bound REAL NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `

	_, err = database.Exec(query)
	return err
}

// Close closes the database handle. Safe to call when InitDB never ran.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// PredictionRecord is one audit row for a served prediction.
type PredictionRecord struct {
	ID                  int64     `json:"id"`
	Bedrooms            int       `json:"bedrooms"`
	Bathrooms           float64   `json:"bathrooms"`
	Area                float64   `json:"area"`
	Age                 int       `json:"age"`
	Quality             int       `json:"quality"`
	Garage              int       `json:"garage"`
	Neighborhood        string    `json:"neighborhood"`
	NeighborhoodEncoded int       `json:"neighborhood_encoded"`
	Price               float64   `json:"price"`
	Lower               float64   `json:"lower"`
	Upper               float64   `json:"upper"`
	CreatedAt           time.Time `json:"created_at"`
}

// SavePrediction appends one audit row.
func SavePrediction(record PredictionRecord) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(`
        INSERT INTO predictions (
            bedrooms, bathrooms, area, age, quality, garage,
            neighborhood, neighborhood_encoded, price, lower_bound, upper_bound
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		record.Bedrooms,
		record.Bathrooms,
		record.Area,
		record.Age,
		record.Quality,
		record.Garage,
		record.Neighborhood,
		record.NeighborhoodEncoded,
		record.Price,
		record.Lower,
		record.Upper,
	)
	return err
}

// RecentPredictions returns the newest rows, newest first.
func RecentPredictions(limit int) ([]PredictionRecord, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := database.Query(`
        SELECT id, bedrooms, bathrooms, area, age, quality, garage,
               neighborhood, neighborhood_encoded, price, lower_bound, upper_bound, created_at
        FROM predictions
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]PredictionRecord, 0)
	for rows.Next() {
		var r PredictionRecord
		if err := rows.Scan(&r.ID, &r.Bedrooms, &r.Bathrooms, &r.Area, &r.Age, &r.Quality, &r.Garage,
			&r.Neighborhood, &r.NeighborhoodEncoded, &r.Price, &r.Lower, &r.Upper, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
