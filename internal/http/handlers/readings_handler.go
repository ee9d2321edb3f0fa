package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"fraudwatch/internal/models"
	"fraudwatch/internal/service"
)

// ReadingsProvider owns the reading write path and the recent feed.
type ReadingsProvider interface {
	AddReading(ctx context.Context, input service.AddReadingInput) error
	RecentReadings(ctx context.Context) ([]models.MeterSubmission, error)
}

// MetricsInvalidator drops cached metrics after a successful write.
type MetricsInvalidator interface {
	InvalidateMetrics(ctx context.Context)
}

// ReadingsHandler holds the reading endpoints.
type ReadingsHandler struct {
	svc         ReadingsProvider
	invalidator MetricsInvalidator
	logger      *zap.Logger
}

// NewReadingsHandler builds handler set.
func NewReadingsHandler(svc ReadingsProvider, invalidator MetricsInvalidator, logger *zap.Logger) *ReadingsHandler {
	return &ReadingsHandler{
		svc:         svc,
		invalidator: invalidator,
		logger:      logger,
	}
}

type addReadingRequest struct {
	CustomerID  int64   `json:"customerId"`
	Consumption float64 `json:"consumption"`
	ReadingDate string  `json:"readingDate"`
}

// HandleAddReading handles POST /api/add-reading.
func (h *ReadingsHandler) HandleAddReading(w http.ResponseWriter, r *http.Request) {
	var req addReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, errors.New("invalid json body"))
		return
	}

	input := service.AddReadingInput{
		CustomerID:  req.CustomerID,
		Consumption: req.Consumption,
		ReadingDate: req.ReadingDate,
	}
	if err := h.svc.AddReading(r.Context(), input); err != nil {
		h.logger.Warn("add reading rejected",
			zap.Int64("customer_id", req.CustomerID),
			zap.Error(err),
		)
		writeFailure(w, err)
		return
	}

	if h.invalidator != nil {
		h.invalidator.InvalidateMetrics(r.Context())
	}
	writeMessage(w, "Reading added successfully! Fraud analysis updated.")
}

// HandleRecentReadings handles GET /api/recent-readings.
func (h *ReadingsHandler) HandleRecentReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := h.svc.RecentReadings(r.Context())
	if err != nil {
		h.logger.Error("recent readings failed", zap.Error(err))
		writeFailure(w, err)
		return
	}
	if readings == nil {
		readings = []models.MeterSubmission{}
	}
	writeData(w, readings)
}
