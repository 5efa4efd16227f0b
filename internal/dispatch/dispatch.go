// Package dispatch routes a voice-platform request to the response it calls for.
package dispatch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pricofy/video-releases-skill/internal/domain"
	"github.com/pricofy/video-releases-skill/internal/log"
	"github.com/pricofy/video-releases-skill/internal/speech"
	"github.com/pricofy/video-releases-skill/internal/telemetry"
)

// Fetcher looks up the newest titles in a catalog category.
type Fetcher interface {
	NewReleases(ctx context.Context, categoryID string) ([]string, error)
}

// Dispatcher routes requests. It holds no state between invocations.
type Dispatcher struct {
	Fetcher    Fetcher
	CategoryID string
}

// New creates a Dispatcher for one invocation.
func New(f Fetcher, categoryID string) *Dispatcher {
	return &Dispatcher{Fetcher: f, CategoryID: categoryID}
}

// OnSessionStarted is the session-start notification. It only logs.
// Request and session IDs come from the context logger.
func (d *Dispatcher) OnSessionStarted(ctx context.Context, ev domain.Event) {
	logger := log.WithComponentFromContext(ctx, "dispatch")
	logger.Info().
		Str(log.FieldEvent, "session_started").
		Msg("session started")
}

// Dispatch returns the envelope for ev. A nil envelope with a nil error is the
// bare success used for SessionEndedRequest.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.Event) (*domain.Envelope, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "skill.dispatch",
		trace.WithAttributes(telemetry.RequestAttributes(
			ev.Request.RequestID, ev.Request.Type, ev.Request.IntentName(), ev.Session.New)...))
	defer span.End()

	logger := log.WithComponentFromContext(ctx, "dispatch")

	switch ev.Request.Type {
	case domain.LaunchRequest:
		logger.Info().Str(log.FieldEvent, "launch").Msg("launch request")
		return speech.Welcome(), nil

	case domain.IntentRequest:
		name := ev.Request.IntentName()
		logger.Info().Str(log.FieldEvent, "intent").Str(log.FieldIntent, name).Msg("intent request")

		switch name {
		case domain.IntentGetNewReleases:
			return d.newReleases(ctx), nil
		case domain.IntentHelp:
			return speech.Welcome(), nil
		default:
			err := &domain.UnrecognizedIntentError{Intent: name}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

	case domain.SessionEndedRequest:
		logger.Info().
			Str(log.FieldEvent, "session_ended").
			Str(log.FieldReason, ev.Request.Reason).
			Msg("session ended")
		return nil, nil

	default:
		err := &domain.UnsupportedRequestError{Type: ev.Request.Type}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
}

// newReleases fetches the category's newest titles. Fetch failures become the
// spoken apology and are never returned.
func (d *Dispatcher) newReleases(ctx context.Context) *domain.Envelope {
	logger := log.WithComponentFromContext(ctx, "dispatch").With().
		Str(log.FieldCategoryID, d.CategoryID).
		Logger()

	start := time.Now()
	titles, err := d.Fetcher.NewReleases(ctx, d.CategoryID)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().Err(err).
			Int64(log.FieldDurationMS, elapsed.Milliseconds()).
			Msg("new releases lookup failed")
		return speech.FetchFailed()
	}

	logger.Info().
		Int(log.FieldTitles, len(titles)).
		Int64(log.FieldDurationMS, elapsed.Milliseconds()).
		Msg("new releases fetched")
	return speech.NewReleases(titles)
}
