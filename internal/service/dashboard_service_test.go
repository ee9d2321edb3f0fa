package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"fraudwatch/internal/models"
)

type fakeFraudStats struct {
	counts    map[string]int
	avg       float64
	cases     []models.FraudRiskRow
	critical  int
	high      int
	medium    int
	err       error
	topCalled int
}

func (f *fakeFraudStats) CountByRiskLevel(_ context.Context, riskLevel string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[riskLevel], nil
}

func (f *fakeFraudStats) AverageScore(context.Context) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.avg, nil
}

func (f *fakeFraudStats) TopCases(_ context.Context, limit int) ([]models.FraudRiskRow, error) {
	f.topCalled++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.cases) > limit {
		return f.cases[:limit], nil
	}
	return f.cases, nil
}

func (f *fakeFraudStats) TierCounts(context.Context) (int, int, int, error) {
	if f.err != nil {
		return 0, 0, 0, f.err
	}
	return f.critical, f.high, f.medium, nil
}

type fakeCustomerCounter struct {
	total int
	err   error
}

func (f *fakeCustomerCounter) Count(context.Context) (int, error) {
	return f.total, f.err
}

type fakeMetricsCache struct {
	stored      *models.DashboardMetrics
	saves       int
	invalidates int
}

func (f *fakeMetricsCache) Get(context.Context) (*models.DashboardMetrics, error) {
	if f.stored == nil {
		return nil, errors.New("cache miss")
	}
	return f.stored, nil
}

func (f *fakeMetricsCache) Save(_ context.Context, metrics models.DashboardMetrics) error {
	f.stored = &metrics
	f.saves++
	return nil
}

func (f *fakeMetricsCache) Invalidate(context.Context) error {
	f.stored = nil
	f.invalidates++
	return nil
}

func TestMetricsComputation(t *testing.T) {
	fraud := &fakeFraudStats{
		counts: map[string]int{models.RiskLevelCritical: 3, models.RiskLevelHigh: 4},
		avg:    72.456,
	}
	customers := &fakeCustomerCounter{total: 20}
	svc := NewDashboardService(fraud, customers, nil, zap.NewNop())

	metrics, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metrics.TotalCustomers != 20 {
		t.Errorf("totalCustomers = %d, want 20", metrics.TotalCustomers)
	}
	if metrics.CriticalCases != 3 || metrics.HighRiskCases != 4 {
		t.Errorf("cases = %d/%d, want 3/4", metrics.CriticalCases, metrics.HighRiskCases)
	}
	if metrics.AvgFraudScore != 72.46 {
		t.Errorf("avgFraudScore = %v, want 72.46", metrics.AvgFraudScore)
	}
	if metrics.DetectionRate != "35%" {
		t.Errorf("detectionRate = %q, want \"35%%\"", metrics.DetectionRate)
	}
}

func TestMetricsEmptyView(t *testing.T) {
	fraud := &fakeFraudStats{counts: map[string]int{}}
	customers := &fakeCustomerCounter{total: 0}
	svc := NewDashboardService(fraud, customers, nil, zap.NewNop())

	metrics, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metrics.AvgFraudScore != 0 {
		t.Errorf("avgFraudScore = %v, want 0", metrics.AvgFraudScore)
	}
	if metrics.DetectionRate != "0%" {
		t.Errorf("detectionRate = %q, want \"0%%\"", metrics.DetectionRate)
	}
}

func TestDetectionRate(t *testing.T) {
	tests := []struct {
		name                  string
		critical, high, total int
		want                  string
	}{
		{"zero total", 5, 5, 0, "0%"},
		{"whole number", 3, 4, 20, "35%"},
		{"repeating fraction rounds to 2 decimals", 1, 0, 3, "33.33%"},
		{"two thirds", 2, 0, 3, "66.67%"},
		{"all flagged", 10, 10, 20, "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectionRate(tt.critical, tt.high, tt.total); got != tt.want {
				t.Errorf("detectionRate(%d, %d, %d) = %q, want %q", tt.critical, tt.high, tt.total, got, tt.want)
			}
		})
	}
}

func TestAnomalyLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, anomalySpikeTampering},
		{99.5, anomalySpikeTampering},
		{94.99, anomalyUsagePattern},
		{85, anomalyUsagePattern},
		{84.9, anomalyIrregularity},
		{75, anomalyIrregularity},
		{74.9, anomalyMinorDeviation},
		{10, anomalyMinorDeviation},
		{0, anomalyMinorDeviation},
	}

	for _, tt := range tests {
		if got := anomalyLabel(tt.score); got != tt.want {
			t.Errorf("anomalyLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestCriticalCasesAnnotation(t *testing.T) {
	fraud := &fakeFraudStats{
		cases: []models.FraudRiskRow{
			{CustomerID: 7, FraudScore: 96, RiskLevel: models.RiskLevelCritical},
			{CustomerID: 3, FraudScore: 88, RiskLevel: models.RiskLevelCritical},
			{CustomerID: 9, FraudScore: 76, RiskLevel: models.RiskLevelHigh},
			{CustomerID: 4, FraudScore: 50, RiskLevel: models.RiskLevelHigh},
		},
	}
	svc := NewDashboardService(fraud, &fakeCustomerCounter{}, nil, zap.NewNop())

	cases, err := svc.CriticalCases(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 4 {
		t.Fatalf("got %d cases, want 4", len(cases))
	}

	wantLabels := []string{anomalySpikeTampering, anomalyUsagePattern, anomalyIrregularity, anomalyMinorDeviation}
	for i, want := range wantLabels {
		if cases[i].AnomalyTypes != want {
			t.Errorf("case %d anomaly label = %q, want %q", i, cases[i].AnomalyTypes, want)
		}
	}

	for i := 1; i < len(cases); i++ {
		if cases[i].FraudScore > cases[i-1].FraudScore {
			t.Errorf("cases not ordered by fraud score: %v after %v", cases[i].FraudScore, cases[i-1].FraudScore)
		}
	}
}

func TestCriticalCasesLimit(t *testing.T) {
	fraud := &fakeFraudStats{}
	for i := 0; i < 30; i++ {
		fraud.cases = append(fraud.cases, models.FraudRiskRow{CustomerID: int64(i), FraudScore: float64(100 - i)})
	}
	svc := NewDashboardService(fraud, &fakeCustomerCounter{}, nil, zap.NewNop())

	cases, err := svc.CriticalCases(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != topCasesLimit {
		t.Errorf("got %d cases, want %d", len(cases), topCasesLimit)
	}
}

func TestRiskBuckets(t *testing.T) {
	tests := []struct {
		name                          string
		total, critical, high, medium int
		wantLow                       int
	}{
		{"remainder is low", 20, 2, 3, 5, 10},
		{"nothing flagged", 20, 0, 0, 0, 20},
		{"low clamps at zero", 5, 4, 3, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fraud := &fakeFraudStats{critical: tt.critical, high: tt.high, medium: tt.medium}
			customers := &fakeCustomerCounter{total: tt.total}
			svc := NewDashboardService(fraud, customers, nil, zap.NewNop())

			buckets, err := svc.RiskBuckets(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buckets.Low != tt.wantLow {
				t.Errorf("low = %d, want %d", buckets.Low, tt.wantLow)
			}
			if buckets.Total != tt.total {
				t.Errorf("total = %d, want %d", buckets.Total, tt.total)
			}
			accounted := buckets.Critical + buckets.High + buckets.Medium + buckets.Low
			if tt.critical+tt.high+tt.medium <= tt.total && accounted != tt.total {
				t.Errorf("buckets sum to %d, want %d", accounted, tt.total)
			}
		})
	}
}

func TestMetricsCacheRoundTrip(t *testing.T) {
	fraud := &fakeFraudStats{
		counts: map[string]int{models.RiskLevelCritical: 1, models.RiskLevelHigh: 1},
		avg:    80,
	}
	customers := &fakeCustomerCounter{total: 10}
	cache := &fakeMetricsCache{}
	svc := NewDashboardService(fraud, customers, cache, zap.NewNop())

	first, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.saves != 1 {
		t.Fatalf("cache saves = %d, want 1", cache.saves)
	}

	// Underlying data changes but the cached payload is served.
	fraud.counts[models.RiskLevelCritical] = 5
	second, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("cached metrics = %+v, want %+v", second, first)
	}

	svc.InvalidateMetrics(context.Background())
	if cache.invalidates != 1 {
		t.Errorf("cache invalidates = %d, want 1", cache.invalidates)
	}

	third, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.CriticalCases != 5 {
		t.Errorf("criticalCases after invalidation = %d, want 5", third.CriticalCases)
	}
}

func TestMetricsErrorPropagates(t *testing.T) {
	wantErr := errors.New("view unavailable")
	fraud := &fakeFraudStats{err: wantErr}
	svc := NewDashboardService(fraud, &fakeCustomerCounter{total: 10}, nil, zap.NewNop())

	if _, err := svc.Metrics(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
