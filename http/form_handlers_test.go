package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

var errTest = errors.New("model failure")

func TestFormPageRenders(t *testing.T) {
	mux := http.NewServeMux()
	RegisterFormHandlers(mux)
	SetFeatureNames(testFeatureNames())
	defer resetHandlerState()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`name="bedrooms"`,
		`name="bathrooms"`,
		`name="area"`,
		`name="neighborhood"`,
		"Average Area",
		"Good Area",
		"Premium Area",
		"Predict Price",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func submitForm(t *testing.T, mux *http.ServeMux, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func exampleForm() url.Values {
	return url.Values{
		"bedrooms":     {"3"},
		"bathrooms":    {"2.0"},
		"area":         {"1500"},
		"age":          {"10"},
		"quality":      {"7"},
		"garage":       {"2"},
		"neighborhood": {"Good Area"},
	}
}

func TestFormSubmitRendersResult(t *testing.T) {
	mux := http.NewServeMux()
	RegisterFormHandlers(mux)
	SetModel(&fakeModel{price: 187500, importances: testImportances()})
	SetFeatureNames(testFeatureNames())
	SetBand(19013)
	defer resetHandlerState()

	w := submitForm(t, mux, exampleForm())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"Prediction Results",
		"$187,500",
		"Expected Price Range",
		"$168,487",
		"$206,513",
		"TotalArea",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected result page to contain %q", want)
		}
	}
}

func TestFormSubmitShowsValidationError(t *testing.T) {
	mux := http.NewServeMux()
	RegisterFormHandlers(mux)
	SetModel(&fakeModel{price: 187500, importances: testImportances()})
	SetFeatureNames(testFeatureNames())
	defer resetHandlerState()

	form := exampleForm()
	form.Set("area", "100")
	w := submitForm(t, mux, form)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "area must be between") {
		t.Fatalf("expected validation message, got: %s", body)
	}
	// The form stays usable for another attempt.
	if !strings.Contains(body, "Predict Price") {
		t.Fatal("expected form to remain on the page")
	}
}

func TestFormSubmitShowsPredictionError(t *testing.T) {
	mux := http.NewServeMux()
	RegisterFormHandlers(mux)
	SetModel(&fakeModel{err: errTest, importances: testImportances()})
	SetFeatureNames(testFeatureNames())
	defer resetHandlerState()

	w := submitForm(t, mux, exampleForm())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "unexpected prediction error") {
		t.Fatalf("expected prediction error banner, got: %s", body)
	}
	if !strings.Contains(body, "Predict Price") {
		t.Fatal("expected form to remain on the page")
	}
}
