package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"housepricer/db"
	"housepricer/house"
	"housepricer/ml"
)

var (
	model        ml.Regressor
	featureNames []string
	band         float64 = house.DefaultBand

	historyEnabled bool

	// Seam for tests.
	savePrediction = db.SavePrediction
)

// SetModel installs the loaded model. Called once at startup.
func SetModel(m ml.Regressor) {
	model = m
}

// SetFeatureNames installs the loaded feature-name order. Called once at
// startup.
func SetFeatureNames(names []string) {
	featureNames = names
}

// SetBand sets the half-width of the displayed price range.
func SetBand(value float64) {
	if value > 0 {
		band = value
	}
}

// SetHistoryEnabled turns on prediction audit rows.
func SetHistoryEnabled(enabled bool) {
	historyEnabled = enabled
}

func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/model", handleModelInfo)
	mux.HandleFunc("GET /api/importance", handleImportance)
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("GET /api/predictions", handleRecentPredictions)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleModelInfo(w http.ResponseWriter, r *http.Request) {
	if model == nil {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusServiceUnavailable)
		return
	}

	info := map[string]interface{}{
		"features":      featureNames,
		"feature_count": len(featureNames),
		"band":          band,
	}
	if forest, ok := model.(*ml.RandomForest); ok {
		info["trees"] = len(forest.Trees)
	}
	respondJSON(w, info)
}

func handleImportance(w http.ResponseWriter, r *http.Request) {
	if model == nil {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusServiceUnavailable)
		return
	}

	ranked, err := house.RankImportances(featureNames, model.FeatureImportances())
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]interface{}{
		"importances": ranked,
		"count":       len(ranked),
	})
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	if model == nil {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusServiceUnavailable)
		return
	}

	var input house.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	estimate, err := runPrediction(input)
	if err != nil {
		logger.Error("prediction failed", zap.Error(err))
		http.Error(w, `{"error":"prediction failed, please try again"}`, http.StatusInternalServerError)
		return
	}

	ranked, err := house.RankImportances(featureNames, model.FeatureImportances())
	if err != nil {
		logger.Error("importance ranking failed", zap.Error(err))
		http.Error(w, `{"error":"prediction failed, please try again"}`, http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{
		"price":           estimate.Price,
		"band":            estimate.Band,
		"lower":           estimate.Lower,
		"upper":           estimate.Upper,
		"price_display":   estimate.FormatPrice(),
		"range_display":   estimate.FormatRange(),
		"importances":     ranked,
	})
}

func handleRecentPredictions(w http.ResponseWriter, r *http.Request) {
	if !historyEnabled {
		http.Error(w, `{"error":"prediction history is disabled"}`, http.StatusNotFound)
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	records, err := db.RecentPredictions(limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]interface{}{
		"predictions": records,
		"count":       len(records),
	})
}

// runPrediction assembles the input vector, runs (or replays) the model
// call and records the side effects of a served prediction.
func runPrediction(input house.Input) (house.Estimate, error) {
	vector, err := input.Vector(featureNames)
	if err != nil {
		return house.Estimate{}, err
	}

	price, cached, err := cachedPredict(vector)
	if err != nil {
		return house.Estimate{}, err
	}
	estimate := house.NewEstimate(price, band)

	encoded, _ := house.EncodeNeighborhood(input.Neighborhood)
	if historyEnabled {
		record := db.PredictionRecord{
			Bedrooms:            input.Bedrooms,
			Bathrooms:           input.Bathrooms,
			Area:                input.Area,
			Age:                 input.Age,
			Quality:             input.Quality,
			Garage:              input.Garage,
			Neighborhood:        input.Neighborhood,
			NeighborhoodEncoded: encoded,
			Price:               estimate.Price,
			Lower:               estimate.Lower,
			Upper:               estimate.Upper,
		}
		if err := savePrediction(record); err != nil {
			logger.Warn("failed to record prediction", zap.Error(err))
		}
	}

	broadcastPrediction(input, estimate, cached)
	return estimate, nil
}

// respondJSON writes data as a JSON response.
func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON", zap.Error(err))
	}
}
