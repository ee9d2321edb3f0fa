package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fraudwatch/internal/meter"
	"fraudwatch/internal/models"
	"fraudwatch/internal/repository"
)

// The seeded dataset ships customers 1-20; the not-found message names that range.
const knownCustomerRange = "1-20"

const readingDateLayout = "2006-01-02"

// CustomerDirectory checks customer existence.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID int64) (bool, error)
}

// ReadingStore persists new readings and lists recent submissions.
type ReadingStore interface {
	RecordReading(ctx context.Context, params repository.RecordReadingParams) error
	RecentSubmissions(ctx context.Context, limit int) ([]models.MeterSubmission, error)
}

// ReadingsService owns the reading write path and the recent-submissions feed.
type ReadingsService struct {
	customers   CustomerDirectory
	store       ReadingStore
	meterSource meter.Source
	ratePerUnit float64
	logger      *zap.Logger
}

// AddReadingInput is one reading submission from the dashboard form.
type AddReadingInput struct {
	CustomerID  int64
	Consumption float64
	ReadingDate string
}

// NewReadingsService builds service.
func NewReadingsService(
	customers CustomerDirectory,
	store ReadingStore,
	meterSource meter.Source,
	ratePerUnit float64,
	logger *zap.Logger,
) *ReadingsService {
	return &ReadingsService{
		customers:   customers,
		store:       store,
		meterSource: meterSource,
		ratePerUnit: ratePerUnit,
		logger:      logger,
	}
}

// AddReading validates and records one reading. Consumption may be negative;
// the fraud view treats negative usage as a tampering signal.
func (s *ReadingsService) AddReading(ctx context.Context, input AddReadingInput) error {
	readingDate, err := time.Parse(readingDateLayout, input.ReadingDate)
	if err != nil {
		return fmt.Errorf("invalid reading date %q, expected YYYY-MM-DD", input.ReadingDate)
	}

	exists, err := s.customers.Exists(ctx, input.CustomerID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("Customer ID %d not found. Available customers: %s", input.CustomerID, knownCustomerRange)
	}

	params := repository.RecordReadingParams{
		CustomerID:    input.CustomerID,
		ReadingDate:   readingDate,
		UnitsConsumed: input.Consumption,
		MeterReading:  s.meterSource.NextReading(),
		BillAmount:    input.Consumption * s.ratePerUnit,
	}

	if err := s.store.RecordReading(ctx, params); err != nil {
		if errors.Is(err, repository.ErrDuplicateReading) {
			return fmt.Errorf("Duplicate entry: customer %d already has a reading for %s",
				input.CustomerID, input.ReadingDate)
		}
		return err
	}

	s.logger.Info("reading recorded",
		zap.Int64("customer_id", input.CustomerID),
		zap.Float64("consumption_kwh", input.Consumption),
		zap.String("reading_date", input.ReadingDate),
	)
	return nil
}

// RecentReadings returns the latest meter submissions.
func (s *ReadingsService) RecentReadings(ctx context.Context) ([]models.MeterSubmission, error) {
	return s.store.RecentSubmissions(ctx, 10)
}
