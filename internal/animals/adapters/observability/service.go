package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
	"github.com/shelterops/adoption-api/internal/animals/ports"
)

const tracerName = "github.com/shelterops/adoption-api/internal/animals/adapters/observability/service"

// Service decorates the adoption application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create persists a new adoption record with instrumentation.
func (s *Service) Create(ctx context.Context, input types.CreateAnimalInput) (*types.AnimalProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Create", attribute.String("animal.name", input.Name))
	defer span.End()

	s.logInfo(ctx, "creating animal", slog.String("animal.name", input.Name))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create animal", slog.String("animal.name", input.Name))
	}
	if result != nil && result.Entity != nil {
		span.SetAttributes(attribute.Int64("animal.id", result.Entity.ID))
		s.metrics.recordCreated(ctx, result.Entity.Status)
		s.logInfo(ctx, "animal created", slog.Int64("animal.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// GetByID loads a single adoption record.
func (s *Service) GetByID(ctx context.Context, input types.AnimalIdentifier) (*types.AnimalProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("animal.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load animal", slog.Int64("animal.id", input.ID))
	}
	return result, nil
}

// List returns one page of adoption records.
func (s *Service) List(ctx context.Context, input types.ListAnimalsInput) (*types.AnimalPage, error) {
	ctx, span := s.startSpan(ctx, "Service.List",
		attribute.Int("page.number", input.Query.Page),
		attribute.Int("page.size", input.Query.Size),
	)
	defer span.End()

	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list animals")
	}
	if result != nil {
		span.SetAttributes(attribute.Int("animal.result.count", len(result.Items)))
	}
	return result, nil
}

// Update replaces the mutable state of an existing record.
func (s *Service) Update(ctx context.Context, input types.UpdateAnimalInput) (*types.AnimalProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.Int64("animal.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "updating animal", slog.Int64("animal.id", input.ID))
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update animal", slog.Int64("animal.id", input.ID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordUpdated(ctx, result.Entity.Status)
		s.logInfo(ctx, "animal updated", slog.Int64("animal.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, input types.AnimalIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.Int64("animal.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "deleting animal", slog.Int64("animal.id", input.ID))
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete animal", slog.Int64("animal.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "animal deleted", slog.Int64("animal.id", input.ID))
	return nil
}

// UpdateStatus moves a record to another adoption status.
func (s *Service) UpdateStatus(ctx context.Context, input types.UpdateStatusInput) (*types.AnimalProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateStatus",
		attribute.Int64("animal.id", input.ID),
		attribute.String("animal.status.requested", string(input.Status)),
	)
	defer span.End()

	s.logInfo(ctx, "updating animal status", slog.Int64("animal.id", input.ID), slog.String("status", string(input.Status)))
	result, err := s.inner.UpdateStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update animal status", slog.Int64("animal.id", input.ID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordStatusChanged(ctx, result.Entity.Status)
		s.logInfo(ctx, "animal status updated", slog.Int64("animal.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	animalsCreated metric.Int64Counter
	animalsUpdated metric.Int64Counter
	animalsDeleted metric.Int64Counter
	statusChanges  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	animalsCreated, _ := m.Int64Counter("animals.service.created", metric.WithDescription("Number of adoption records created"))
	animalsUpdated, _ := m.Int64Counter("animals.service.updated", metric.WithDescription("Number of adoption records updated"))
	animalsDeleted, _ := m.Int64Counter("animals.service.deleted", metric.WithDescription("Number of adoption records deleted"))
	statusChanges, _ := m.Int64Counter("animals.service.status_changes", metric.WithDescription("Number of adoption status transitions"))
	return serviceMetrics{
		animalsCreated: animalsCreated,
		animalsUpdated: animalsUpdated,
		animalsDeleted: animalsDeleted,
		statusChanges:  statusChanges,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.animalsCreated, 1, attribute.String("animal.status", string(status)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.animalsUpdated, 1, attribute.String("animal.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.animalsDeleted, 1)
}

func (m serviceMetrics) recordStatusChanged(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.statusChanges, 1, attribute.String("animal.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}
