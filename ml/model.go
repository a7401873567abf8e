package ml

// Regressor is the only surface the rest of the service sees of the
// pre-trained model.
type Regressor interface {
	Predict(features []float64) (float64, error)
	FeatureImportances() []float64
}
