package house

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultBand is the static half-width of the displayed price range. It is
// a display constant, not a quantity derived from the model.
const DefaultBand = 19013

var printer = message.NewPrinter(language.AmericanEnglish)

// Estimate is the displayable result of one prediction.
type Estimate struct {
	Price float64 `json:"price"`
	Band  float64 `json:"band"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// NewEstimate centers a symmetric band on the model's point estimate.
func NewEstimate(price, band float64) Estimate {
	return Estimate{
		Price: price,
		Band:  band,
		Lower: price - band,
		Upper: price + band,
	}
}

func (e Estimate) FormatPrice() string { return Dollars(e.Price) }
func (e Estimate) FormatBand() string  { return "± " + Dollars(e.Band) }
func (e Estimate) FormatRange() string {
	return Dollars(e.Lower) + " - " + Dollars(e.Upper)
}

// Dollars renders a value as a grouped dollar amount, e.g. $187,500.
func Dollars(value float64) string {
	return printer.Sprintf("$%d", int64(math.Round(value)))
}

// FeatureImportance is one row of the displayed impact ranking.
type FeatureImportance struct {
	Rank       int     `json:"rank"`
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Percent    float64 `json:"percent"`
}

// RankImportances pairs feature names with the model's importances and
// stable-sorts descending, so equal importances keep feature order.
func RankImportances(names []string, importances []float64) ([]FeatureImportance, error) {
	if len(names) != len(importances) {
		return nil, errors.New("feature names and importances length mismatch")
	}

	total := 0.0
	for _, value := range importances {
		total += value
	}

	ranked := make([]FeatureImportance, len(names))
	for i, name := range names {
		percent := 0.0
		if total > 0 {
			percent = importances[i] / total * 100
		}
		ranked[i] = FeatureImportance{
			Feature:    name,
			Importance: importances[i],
			Percent:    percent,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Importance > ranked[j].Importance
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}
