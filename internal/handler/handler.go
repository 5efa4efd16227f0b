// Package handler provides the Lambda handler for the video releases skill.
package handler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.opentelemetry.io/otel/codes"

	"github.com/pricofy/video-releases-skill/internal/catalog"
	"github.com/pricofy/video-releases-skill/internal/config"
	"github.com/pricofy/video-releases-skill/internal/dispatch"
	"github.com/pricofy/video-releases-skill/internal/domain"
	"github.com/pricofy/video-releases-skill/internal/log"
	"github.com/pricofy/video-releases-skill/internal/telemetry"
)

// ErrInvalidApplicationID is returned when the caller is not the configured skill.
var ErrInvalidApplicationID = errors.New("Invalid Application ID")

// FetcherFactory builds the catalog fetcher from the loaded configuration.
type FetcherFactory func(catalog.Options) dispatch.Fetcher

// Handler runs one invocation per call. Configuration is loaded on every call.
type Handler struct {
	ConfigPath string
	NewFetcher FetcherFactory
}

// New returns a Handler reading the deployed configuration and calling the
// Product Advertising API.
func New() *Handler {
	return &Handler{
		ConfigPath: config.Path(),
		NewFetcher: func(opts catalog.Options) dispatch.Fetcher { return catalog.New(opts) },
	}
}

// Handle processes a voice-platform event.
// It returns the envelope to send back, nil for a bare success, or the error
// that fails the invocation. Panics are recovered and returned as *domain.PanicError.
func (h *Handler) Handle(ctx context.Context, ev domain.Event) (env *domain.Envelope, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "skill.invoke")
	defer span.End()

	logger := log.FromContext(ctx).With().
		Str(log.FieldAlexaRequestID, ev.Request.RequestID).
		Str(log.FieldSessionID, ev.Session.SessionID).
		Str(log.FieldRequestType, ev.Request.Type).
		Logger()
	ctx = log.WithLogger(ctx, logger)

	defer func() {
		if r := recover(); r != nil {
			env, err = nil, &domain.PanicError{Value: r}
			logger.Error().Err(err).Str("stack", string(debug.Stack())).Msg("invocation panicked")
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error().Err(err).Msg("invocation failed")
		}
	}()

	cfg, err := config.Load(h.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Prevent getting called by any other skill
	if allowed := cfg.Alexa.AllowedAppID; allowed != "" && ev.Session.Application.ApplicationID != allowed {
		return nil, fmt.Errorf("%w: %q", ErrInvalidApplicationID, ev.Session.Application.ApplicationID)
	}

	d := dispatch.New(h.NewFetcher(cfg.CatalogOptions()), cfg.CategoryID())

	if ev.Session.New {
		d.OnSessionStarted(ctx, ev)
	}

	return d.Dispatch(ctx, ev)
}
