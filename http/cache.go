package http

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// The model is pure, so identical input vectors can replay the previous
// result without another tree walk.
var predictionCache *lru.Cache[string, float64]

// SetCacheSize builds the prediction cache; size <= 0 disables it.
func SetCacheSize(size int) {
	if size <= 0 {
		predictionCache = nil
		return
	}
	cache, err := lru.New[string, float64](size)
	if err != nil {
		predictionCache = nil
		return
	}
	predictionCache = cache
}

func cachedPredict(vector []float64) (price float64, cached bool, err error) {
	key := vectorKey(vector)
	if predictionCache != nil {
		if value, ok := predictionCache.Get(key); ok {
			return value, true, nil
		}
	}

	price, err = model.Predict(vector)
	if err != nil {
		return 0, false, err
	}
	if predictionCache != nil {
		predictionCache.Add(key, price)
	}
	return price, false, nil
}

func vectorKey(vector []float64) string {
	parts := make([]string, len(vector))
	for i, value := range vector {
		parts[i] = strconv.FormatFloat(value, 'g', -1, 64)
	}
	return strings.Join(parts, "|")
}
