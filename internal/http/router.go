package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	DashboardMetrics http.HandlerFunc
	CriticalCases    http.HandlerFunc
	RiskBuckets      http.HandlerFunc
	AddReading       http.HandlerFunc
	RecentReadings   http.HandlerFunc
	Health           http.HandlerFunc
	Assets           http.Handler
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.DashboardMetrics != nil {
		mux.Handle("/api/dashboard", method(http.MethodGet, routes.DashboardMetrics))
	}
	if routes.CriticalCases != nil {
		mux.Handle("/api/critical-cases", method(http.MethodGet, routes.CriticalCases))
	}
	if routes.RiskBuckets != nil {
		mux.Handle("/api/risk-buckets", method(http.MethodGet, routes.RiskBuckets))
	}
	if routes.AddReading != nil {
		mux.Handle("/api/add-reading", method(http.MethodPost, routes.AddReading))
	}
	if routes.RecentReadings != nil {
		mux.Handle("/api/recent-readings", method(http.MethodGet, routes.RecentReadings))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Assets != nil {
		mux.Handle("/", routes.Assets)
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
