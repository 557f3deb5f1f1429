package handlers

import "esselab.org/esse-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
}

// NewAnalytics builds Analytics from configuration.
func NewAnalytics(cfg config.AnalyticsConfig) Analytics {
	return Analytics{GA4MeasurementID: cfg.GA4MeasurementID}
}

// Enabled reports whether any tracker is configured.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" }
