package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"fraudwatch/internal/models"
)

// DashboardProvider supplies the dashboard read-side payloads.
type DashboardProvider interface {
	Metrics(ctx context.Context) (models.DashboardMetrics, error)
	CriticalCases(ctx context.Context) ([]models.CriticalCase, error)
	RiskBuckets(ctx context.Context) (models.RiskBuckets, error)
}

// NewDashboardMetricsHandler returns GET /api/dashboard handler.
func NewDashboardMetricsHandler(svc DashboardProvider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := svc.Metrics(r.Context())
		if err != nil {
			logger.Error("dashboard metrics failed", zap.Error(err))
			writeFailure(w, err)
			return
		}
		writeData(w, metrics)
	}
}

// NewCriticalCasesHandler returns GET /api/critical-cases handler.
func NewCriticalCasesHandler(svc DashboardProvider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cases, err := svc.CriticalCases(r.Context())
		if err != nil {
			logger.Error("critical cases failed", zap.Error(err))
			writeFailure(w, err)
			return
		}
		if cases == nil {
			cases = []models.CriticalCase{}
		}
		writeData(w, cases)
	}
}

// NewRiskBucketsHandler returns GET /api/risk-buckets handler.
func NewRiskBucketsHandler(svc DashboardProvider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets, err := svc.RiskBuckets(r.Context())
		if err != nil {
			logger.Error("risk buckets failed", zap.Error(err))
			writeFailure(w, err)
			return
		}
		writeData(w, buckets)
	}
}
