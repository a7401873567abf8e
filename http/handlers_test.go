package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"housepricer/db"
)

func TestHealthHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(handleHealth)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"status":"ok"}`
	if rr.Body.String() != expected+"\n" && rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestHandleModelInfo(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	SetModel(&fakeModel{price: 100000, importances: testImportances()})
	SetFeatureNames(testFeatureNames())
	SetBand(19013)
	defer resetHandlerState()

	req := httptest.NewRequest(http.MethodGet, "/api/model", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["feature_count"].(float64) != 7 {
		t.Fatalf("unexpected feature count: %v", payload["feature_count"])
	}
	if payload["band"].(float64) != 19013 {
		t.Fatalf("unexpected band: %v", payload["band"])
	}
}

func TestHandleModelInfoWithoutModel(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	resetHandlerState()

	req := httptest.NewRequest(http.MethodGet, "/api/model", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestHandleImportance(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	SetModel(&fakeModel{price: 100000, importances: testImportances()})
	SetFeatureNames(testFeatureNames())
	defer resetHandlerState()

	req := httptest.NewRequest(http.MethodGet, "/api/importance", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload struct {
		Importances []struct {
			Rank    int     `json:"rank"`
			Feature string  `json:"feature"`
			Percent float64 `json:"percent"`
		} `json:"importances"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Count != 7 {
		t.Fatalf("expected 7 importances, got %d", payload.Count)
	}
	if payload.Importances[0].Feature != "TotalArea" {
		t.Fatalf("expected TotalArea ranked first, got %s", payload.Importances[0].Feature)
	}
}

func TestMain(m *testing.M) {
	// Setup
	dbPath := "./test.db"
	db.InitDB(dbPath)

	code := m.Run()

	// Teardown
	db.Close()
	os.Remove(dbPath)
	os.Exit(code)
}
