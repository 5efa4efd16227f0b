package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricofy/video-releases-skill/internal/domain"
	"github.com/pricofy/video-releases-skill/internal/log"
	"github.com/pricofy/video-releases-skill/internal/speech"
)

const moviesNode = "2858905011"

type fakeFetcher struct {
	titles []string
	err    error

	calls      int
	categoryID string
}

func (f *fakeFetcher) NewReleases(_ context.Context, categoryID string) ([]string, error) {
	f.calls++
	f.categoryID = categoryID
	return f.titles, f.err
}

func event(requestType, intent string) domain.Event {
	ev := domain.Event{
		Session: domain.Session{
			SessionID:   "amzn1.echo-api.session.1",
			Application: domain.Application{ApplicationID: "amzn1.ask.skill.primevideo"},
		},
		Request: domain.Request{Type: requestType, RequestID: "amzn1.echo-api.request.1"},
	}
	if intent != "" {
		ev.Request.Intent = &domain.Intent{Name: intent}
	}
	return ev
}

func TestDispatch_Welcome(t *testing.T) {
	tests := []struct {
		name string
		ev   domain.Event
	}{
		{"launch", event(domain.LaunchRequest, "")},
		{"help intent", event(domain.IntentRequest, domain.IntentHelp)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{}
			env, err := New(f, moviesNode).Dispatch(context.Background(), tt.ev)
			require.NoError(t, err)
			require.NotNil(t, env)

			assert.Equal(t, speech.WelcomeText, env.Response.OutputSpeech.Text)
			assert.Equal(t, "Prime Video - Welcome", env.Response.Card.Title)
			assert.False(t, env.Response.ShouldEndSession)
			require.NotNil(t, env.Response.Reprompt)
			assert.Equal(t, speech.WelcomeReprompt, env.Response.Reprompt.OutputSpeech.Text)
			assert.Zero(t, f.calls, "welcome must not touch the catalog")
		})
	}
}

func TestDispatch_NewReleases(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{
			name:   "several titles in order",
			titles: []string{"Arrival", "Moonlight", "Fences"},
			want:   "Here are the latest releases to Amazon Video: Arrival. Moonlight. Fences. ",
		},
		{
			name:   "zero titles",
			titles: []string{},
			want:   "Here are the latest releases to Amazon Video: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{titles: tt.titles}
			env, err := New(f, moviesNode).Dispatch(context.Background(), event(domain.IntentRequest, domain.IntentGetNewReleases))
			require.NoError(t, err)
			require.NotNil(t, env)

			assert.Equal(t, tt.want, env.Response.OutputSpeech.Text)
			assert.Equal(t, tt.want, env.Response.Card.Content)
			assert.Equal(t, "Prime Video - New Releases", env.Response.Card.Title)
			assert.True(t, env.Response.ShouldEndSession)
			assert.Nil(t, env.Response.Reprompt)
			assert.Equal(t, 1, f.calls)
			assert.Equal(t, moviesNode, f.categoryID)
		})
	}
}

func TestDispatch_FetchFailureIsAbsorbed(t *testing.T) {
	failures := []error{
		errors.New("dial tcp: connection refused"),
		fmt.Errorf("wrapped: %w", context.DeadlineExceeded),
		errors.New("catalog API error TooManyRequests"),
	}

	for _, fetchErr := range failures {
		t.Run(fetchErr.Error(), func(t *testing.T) {
			f := &fakeFetcher{err: fetchErr}
			env, err := New(f, moviesNode).Dispatch(context.Background(), event(domain.IntentRequest, domain.IntentGetNewReleases))
			require.NoError(t, err)
			require.NotNil(t, env)

			assert.Equal(t, speech.FetchApology, env.Response.OutputSpeech.Text)
			assert.True(t, env.Response.ShouldEndSession)
		})
	}
}

func TestDispatch_UnrecognizedIntent(t *testing.T) {
	for _, intent := range []string{"AMAZON.StopIntent", "GetTopSellers", ""} {
		t.Run("intent="+intent, func(t *testing.T) {
			f := &fakeFetcher{}
			env, err := New(f, moviesNode).Dispatch(context.Background(), event(domain.IntentRequest, intent))
			require.Error(t, err)
			assert.Nil(t, env)

			var unrecognized *domain.UnrecognizedIntentError
			require.True(t, errors.As(err, &unrecognized))
			assert.Equal(t, intent, unrecognized.Intent)
			assert.Zero(t, f.calls)
		})
	}
}

func TestDispatch_SessionEnded(t *testing.T) {
	ev := event(domain.SessionEndedRequest, "")
	ev.Request.Reason = "USER_INITIATED"

	f := &fakeFetcher{}
	env, err := New(f, moviesNode).Dispatch(context.Background(), ev)
	require.NoError(t, err)
	assert.Nil(t, env)
	assert.Zero(t, f.calls)
}

func TestDispatch_UnsupportedRequestType(t *testing.T) {
	env, err := New(&fakeFetcher{}, moviesNode).Dispatch(context.Background(), event("CanFulfillIntentRequest", ""))
	require.Error(t, err)
	assert.Nil(t, env)

	var unsupported *domain.UnsupportedRequestError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "CanFulfillIntentRequest", unsupported.Type)
}

func TestOnSessionStarted_Logs(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), zerolog.New(&buf))

	ev := event(domain.LaunchRequest, "")
	ev.Session.New = true
	New(&fakeFetcher{}, moviesNode).OnSessionStarted(ctx, ev)

	out := buf.String()
	assert.Contains(t, out, `"event":"session_started"`)
	assert.NotContains(t, out, `"session_id"`, "IDs come from the context logger")
}
