package service

import (
	"context"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fraudwatch/internal/models"
)

// Anomaly labels synthesized from the fraud score, inclusive on each lower bound.
const (
	anomalySpikeTampering = "Consumption spike, Meter tampering"
	anomalyUsagePattern   = "Usage pattern anomaly"
	anomalyIrregularity   = "Consumption irregularity"
	anomalyMinorDeviation = "Minor deviation detected"
)

const topCasesLimit = 20

// FraudStatsSource reads the fraud_risk_dashboard view.
type FraudStatsSource interface {
	CountByRiskLevel(ctx context.Context, riskLevel string) (int, error)
	AverageScore(ctx context.Context) (float64, error)
	TopCases(ctx context.Context, limit int) ([]models.FraudRiskRow, error)
	TierCounts(ctx context.Context) (critical, high, medium int, err error)
}

// CustomerCounter counts known customers.
type CustomerCounter interface {
	Count(ctx context.Context) (int, error)
}

// MetricsCache caches the computed metrics payload.
type MetricsCache interface {
	Get(ctx context.Context) (*models.DashboardMetrics, error)
	Save(ctx context.Context, metrics models.DashboardMetrics) error
	Invalidate(ctx context.Context) error
}

// DashboardService assembles the read-side payloads for the dashboard.
type DashboardService struct {
	fraud     FraudStatsSource
	customers CustomerCounter
	cache     MetricsCache
	logger    *zap.Logger
}

// NewDashboardService builds service. cache may be nil, disabling metrics caching.
func NewDashboardService(
	fraud FraudStatsSource,
	customers CustomerCounter,
	cache MetricsCache,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		fraud:     fraud,
		customers: customers,
		cache:     cache,
		logger:    logger,
	}
}

// Metrics computes the headline dashboard metrics.
func (s *DashboardService) Metrics(ctx context.Context) (models.DashboardMetrics, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil && cached != nil {
			return *cached, nil
		}
		if err != nil && err != redis.Nil {
			s.logger.Warn("metrics cache read failed", zap.Error(err))
		}
	}

	total, err := s.customers.Count(ctx)
	if err != nil {
		return models.DashboardMetrics{}, err
	}
	critical, err := s.fraud.CountByRiskLevel(ctx, models.RiskLevelCritical)
	if err != nil {
		return models.DashboardMetrics{}, err
	}
	high, err := s.fraud.CountByRiskLevel(ctx, models.RiskLevelHigh)
	if err != nil {
		return models.DashboardMetrics{}, err
	}
	avg, err := s.fraud.AverageScore(ctx)
	if err != nil {
		return models.DashboardMetrics{}, err
	}

	metrics := models.DashboardMetrics{
		TotalCustomers: total,
		CriticalCases:  critical,
		HighRiskCases:  high,
		AvgFraudScore:  round2(avg),
		DetectionRate:  detectionRate(critical, high, total),
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, metrics); err != nil {
			s.logger.Warn("metrics cache write failed", zap.Error(err))
		}
	}
	return metrics, nil
}

// CriticalCases returns the top flagged customers annotated with anomaly labels.
func (s *DashboardService) CriticalCases(ctx context.Context) ([]models.CriticalCase, error) {
	rows, err := s.fraud.TopCases(ctx, topCasesLimit)
	if err != nil {
		return nil, err
	}

	cases := make([]models.CriticalCase, 0, len(rows))
	for _, row := range rows {
		cases = append(cases, models.CriticalCase{
			FraudRiskRow: row,
			AnomalyTypes: anomalyLabel(row.FraudScore),
		})
	}
	return cases, nil
}

// RiskBuckets computes per-tier counts over the whole view. Low is the remainder
// of the customer base, clamped at zero.
func (s *DashboardService) RiskBuckets(ctx context.Context) (models.RiskBuckets, error) {
	total, err := s.customers.Count(ctx)
	if err != nil {
		return models.RiskBuckets{}, err
	}
	critical, high, medium, err := s.fraud.TierCounts(ctx)
	if err != nil {
		return models.RiskBuckets{}, err
	}

	low := total - (critical + high + medium)
	if low < 0 {
		low = 0
	}
	return models.RiskBuckets{
		Critical: critical,
		High:     high,
		Medium:   medium,
		Low:      low,
		Total:    total,
	}, nil
}

// InvalidateMetrics drops the cached metrics after a write.
func (s *DashboardService) InvalidateMetrics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil && err != redis.Nil {
		s.logger.Warn("metrics cache invalidation failed", zap.Error(err))
	}
}

func anomalyLabel(score float64) string {
	switch {
	case score >= 95:
		return anomalySpikeTampering
	case score >= 85:
		return anomalyUsagePattern
	case score >= 75:
		return anomalyIrregularity
	default:
		return anomalyMinorDeviation
	}
}

// detectionRate formats (critical+high)/total as a percentage string with at
// most two decimals, "0%" when there are no customers.
func detectionRate(critical, high, total int) string {
	if total <= 0 {
		return "0%"
	}
	rate := round2(float64(critical+high) / float64(total) * 100)
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
