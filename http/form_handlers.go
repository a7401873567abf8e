package http

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"housepricer/house"
)

type formPage struct {
	Input         house.Input
	Neighborhoods []string
	Estimate      *house.Estimate
	Importances   []house.FeatureImportance
	Error         string
	FeatureCount  int
}

func RegisterFormHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleFormPage)
	mux.HandleFunc("POST /predict", handleFormSubmit)
}

func handleFormPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, formPage{
		Input:         house.DefaultInput(),
		Neighborhoods: house.Neighborhoods,
		FeatureCount:  len(featureNames),
	})
}

func handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	page := formPage{
		Input:         house.DefaultInput(),
		Neighborhoods: house.Neighborhoods,
		FeatureCount:  len(featureNames),
	}

	input, err := parseFormInput(r)
	if err != nil {
		page.Error = err.Error()
		renderPage(w, page)
		return
	}
	page.Input = input

	if err := input.Validate(); err != nil {
		page.Error = err.Error()
		renderPage(w, page)
		return
	}

	if model == nil {
		page.Error = "model not loaded"
		renderPage(w, page)
		return
	}

	estimate, err := runPrediction(input)
	if err != nil {
		logger.Error("prediction failed", zap.Error(err))
		page.Error = "An unexpected prediction error occurred, please try again."
		renderPage(w, page)
		return
	}

	ranked, err := house.RankImportances(featureNames, model.FeatureImportances())
	if err != nil {
		logger.Error("importance ranking failed", zap.Error(err))
		page.Error = "An unexpected prediction error occurred, please try again."
		renderPage(w, page)
		return
	}

	page.Estimate = &estimate
	page.Importances = ranked
	renderPage(w, page)
}

func parseFormInput(r *http.Request) (house.Input, error) {
	var input house.Input
	if err := r.ParseForm(); err != nil {
		return input, err
	}

	var err error
	if input.Bedrooms, err = strconv.Atoi(r.FormValue("bedrooms")); err != nil {
		return input, errors.New("bedrooms must be a whole number")
	}
	if input.Bathrooms, err = strconv.ParseFloat(r.FormValue("bathrooms"), 64); err != nil {
		return input, errors.New("bathrooms must be a number")
	}
	if input.Area, err = strconv.ParseFloat(r.FormValue("area"), 64); err != nil {
		return input, errors.New("area must be a number")
	}
	if input.Age, err = strconv.Atoi(r.FormValue("age")); err != nil {
		return input, errors.New("age must be a whole number")
	}
	if input.Quality, err = strconv.Atoi(r.FormValue("quality")); err != nil {
		return input, errors.New("quality must be a whole number")
	}
	if input.Garage, err = strconv.Atoi(r.FormValue("garage")); err != nil {
		return input, errors.New("garage must be a whole number")
	}
	input.Neighborhood = r.FormValue("neighborhood")
	return input, nil
}

func renderPage(w http.ResponseWriter, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, page); err != nil {
		logger.Error("failed to render page", zap.Error(err))
	}
}
