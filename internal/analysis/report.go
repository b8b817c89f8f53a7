package analysis

import (
	"fmt"
	"math"
	"strings"
)

// samples returns how many predictions to render.
func (r *Report) samples() int {
	n := len(r.Predictions)
	if r.sampleRows > 0 && r.sampleRows < n {
		return r.sampleRows
	}
	return n
}

// Render returns the report in the named format: "text" or "markdown".
func (r *Report) Render(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "txt":
		return r.Text(), nil
	case "markdown", "md":
		return r.Markdown(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text|markdown)", format)
	}
}

// Text renders the plain console report.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("✓ Read %d player records from %s\n", r.Records, r.Name))
	b.WriteString("✓ Model trained\n")
	b.WriteString("Coefficients: [")
	for i, c := range r.Coefficients {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%s=%.6g", r.Features[i], c))
	}
	b.WriteString("]\n")
	b.WriteString(fmt.Sprintf("Intercept: %.6g\n", r.Intercept))

	n := r.samples()
	b.WriteString("Predictions: [")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%.2f", r.Predictions[i]))
	}
	if n < len(r.Predictions) {
		b.WriteString(fmt.Sprintf(", … (%d more)", len(r.Predictions)-n))
	}
	b.WriteString("]\n")

	for i, c := range r.Correlations {
		b.WriteString(fmt.Sprintf("Correlation between %s and %s: %.3f\n", r.Features[i], r.Target, c))
	}
	b.WriteString(fmt.Sprintf("Mean Absolute Error (MAE): %.2f\n", r.MAE))
	b.WriteString(fmt.Sprintf("Mean Squared Error (MSE): %.2f\n", r.MSE))
	for _, w := range r.Warnings {
		b.WriteString("⚠ ")
		b.WriteString(w)
		b.WriteString("\n")
	}
	return b.String()
}

// Markdown renders a sectioned report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.RunID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Records))
	b.WriteString(fmt.Sprintf("Target: %s\n\n", r.Target))

	b.WriteString("[MODEL]\n")
	b.WriteString(fmt.Sprintf("- intercept: %.6g\n", r.Intercept))
	for i, c := range r.Coefficients {
		b.WriteString(fmt.Sprintf("- %s: %.6g\n", r.Features[i], c))
	}

	b.WriteString("\n[FEATURES]\n")
	for i, c := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: min %.4g, max %.4g, mean %.4g, std %.4g", c.Name, c.Min, c.Max, c.Mean, c.Std))
		if i < len(r.Correlations) {
			b.WriteString(fmt.Sprintf(" — r=%.3f", r.Correlations[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[METRICS]\n")
	b.WriteString(fmt.Sprintf("- MAE: %.4g\n", r.MAE))
	b.WriteString(fmt.Sprintf("- MSE: %.4g\n", r.MSE))
	if !math.IsNaN(r.RSquared) {
		b.WriteString(fmt.Sprintf("- R²: %.4f\n", r.RSquared))
	}
	if r.Residual.OutlierThreshold > 0 {
		b.WriteString(fmt.Sprintf("- residual outliers: %d above |z|>%.1f", r.Residual.OutliersCount, r.Residual.OutlierThreshold))
		if r.Residual.OutliersMaxAbsZ > 0 {
			b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", r.Residual.OutliersMaxAbsZ))
		}
		b.WriteString("\n")
	}

	if n := r.samples(); n > 0 {
		b.WriteString("\n[PREDICTIONS]\n")
		b.WriteString("| # | actual | predicted | residual |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for i := 0; i < n; i++ {
			a, p := r.Actual[i], r.Predictions[i]
			b.WriteString(fmt.Sprintf("| %d | %.0f | %.2f | %.2f |\n", i+1, a, p, a-p))
		}
		if n < len(r.Predictions) {
			b.WriteString(fmt.Sprintf("(%d more rows omitted)\n", len(r.Predictions)-n))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
