// Package main is the entry point for the video releases skill Lambda function.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/pricofy/video-releases-skill/internal/domain"
	"github.com/pricofy/video-releases-skill/internal/handler"
	"github.com/pricofy/video-releases-skill/internal/log"
	"github.com/pricofy/video-releases-skill/internal/telemetry"
)

func main() {
	log.Configure(log.Config{})
	logger := log.WithComponent("main")

	tp, err := telemetry.NewProvider(context.Background(), telemetry.ConfigFromEnv())
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
		tp = &telemetry.Provider{}
	}

	inv := &invoker{skill: handler.New(), tp: tp}
	lambda.Start(inv.handleRequest)
}

// invoker adapts the skill handler to the Lambda runtime.
type invoker struct {
	skill *handler.Handler
	tp    *telemetry.Provider
}

func (inv *invoker) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ctx = log.ContextWithRequestID(ctx, lc.AwsRequestID)
	}
	defer func() {
		if err := inv.tp.Flush(ctx); err != nil {
			log.FromContext(ctx).Warn().Err(err).Msg("failed to flush spans")
		}
	}()

	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup)
	}

	var ev domain.Event
	if err := json.Unmarshal(event, &ev); err != nil {
		log.FromContext(ctx).Error().Err(err).Msg("malformed event")
		return nil, fmt.Errorf("malformed event: %w", err)
	}

	env, err := inv.skill.Handle(ctx, ev)
	if err != nil {
		return nil, err
	}
	if env == nil {
		// Session ended: the platform expects no response body.
		return nil, nil
	}
	return env, nil
}
