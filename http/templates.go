package http

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Smart House Price Predictor</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #222; }
  h1 { font-size: 1.6rem; }
  form { background: #f7f7f9; border: 1px solid #e2e2e8; border-radius: 8px; padding: 1rem 1.5rem; }
  label { display: block; margin-top: 0.9rem; font-weight: 600; font-size: 0.9rem; }
  input, select { width: 100%; box-sizing: border-box; margin-top: 0.25rem; }
  output { font-weight: 400; margin-left: 0.5rem; }
  button { margin-top: 1.2rem; width: 100%; padding: 0.6rem; font-size: 1rem; background: #2563eb; color: #fff; border: 0; border-radius: 6px; cursor: pointer; }
  .error { background: #fdecea; border: 1px solid #f5c6c0; color: #92261c; border-radius: 6px; padding: 0.8rem 1rem; margin: 1rem 0; }
  .result { background: #edf7ee; border: 1px solid #c5e2c8; border-radius: 8px; padding: 1rem 1.5rem; margin: 1rem 0; }
  .metrics { display: flex; gap: 2rem; }
  .metric .value { font-size: 1.5rem; font-weight: 700; }
  .metric .label { font-size: 0.8rem; color: #555; }
  .bar-row { margin: 0.5rem 0; font-size: 0.85rem; }
  .bar { background: #dbe7fb; border-radius: 4px; height: 10px; }
  .bar > span { display: block; background: #2563eb; border-radius: 4px; height: 10px; }
</style>
</head>
<body>
<h1>🏠 Smart House Price Predictor</h1>
<p>Enter your house details below to get an <strong>instant price prediction</strong>.</p>

{{if .Error}}<div class="error">{{.Error}}</div>{{end}}

{{if .Estimate}}
<div class="result">
  <h2>💰 Prediction Results</h2>
  <div class="metrics">
    <div class="metric">
      <div class="value">{{.Estimate.FormatPrice}}</div>
      <div class="label">Predicted Price</div>
    </div>
    <div class="metric">
      <div class="value">{{.Estimate.FormatBand}}</div>
      <div class="label">Confidence Interval</div>
    </div>
  </div>
  <p>📊 Expected Price Range: <strong>{{.Estimate.FormatRange}}</strong></p>

  <h3>📈 Feature Impact Ranking</h3>
  {{range .Importances}}
  <div class="bar-row">
    {{.Rank}}. {{.Feature}}: {{printf "%.1f" .Percent}}%
    <div class="bar"><span style="width: {{printf "%.1f" .Percent}}%"></span></div>
  </div>
  {{end}}
</div>
{{end}}

<form method="post" action="/predict">
  <label>Bedrooms
    <input type="range" name="bedrooms" min="1" max="10" step="1" value="{{.Input.Bedrooms}}"
           oninput="this.nextElementSibling.value = this.value">
    <output>{{.Input.Bedrooms}}</output>
  </label>
  <label>Total Bathrooms
    <input type="range" name="bathrooms" min="0.5" max="10" step="0.5" value="{{.Input.Bathrooms}}"
           oninput="this.nextElementSibling.value = this.value">
    <output>{{.Input.Bathrooms}}</output>
  </label>
  <label>Total Area (sqft)
    <input type="number" name="area" min="500" max="20000" step="1" value="{{.Input.Area}}">
  </label>
  <label>House Age (years)
    <input type="range" name="age" min="0" max="100" step="1" value="{{.Input.Age}}"
           oninput="this.nextElementSibling.value = this.value">
    <output>{{.Input.Age}}</output>
  </label>
  <label>Overall Quality (1-10)
    <input type="range" name="quality" min="1" max="10" step="1" value="{{.Input.Quality}}"
           oninput="this.nextElementSibling.value = this.value">
    <output>{{.Input.Quality}}</output>
  </label>
  <label>Garage Cars
    <input type="range" name="garage" min="0" max="5" step="1" value="{{.Input.Garage}}"
           oninput="this.nextElementSibling.value = this.value">
    <output>{{.Input.Garage}}</output>
  </label>
  <label>Neighborhood
    <select name="neighborhood">
      {{$selected := .Input.Neighborhood}}
      {{range .Neighborhoods}}
      <option value="{{.}}"{{if eq . $selected}} selected{{end}}>{{.}}</option>
      {{end}}
    </select>
  </label>
  <button type="submit">🎯 Predict Price</button>
</form>

<p style="text-align: center; color: grey;">Pre-trained model, {{.FeatureCount}} key factors</p>
</body>
</html>
`
