// Package main contains the Lambda warmup handler for preventing cold starts.
// The platform abandons a skill request after a few seconds, so a scheduled
// rule pings the function to keep instances warm.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/pricofy/video-releases-skill/internal/log"
)

const (
	// WarmupSource identifies warmup events from the scheduled rule
	WarmupSource = "warmup"

	// WarmupDelay ensures instances overlap to create true concurrency
	WarmupDelay = 75 * time.Millisecond

	// MaxWarmupConcurrency caps the self-invocations one warmup event can fan out
	MaxWarmupConcurrency = 10
)

// WarmupEvent represents the scheduled event payload for warmup
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is the response returned by warmup operations
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// IsWarmupEvent checks if the event is a warmup event
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var fields struct {
		Source      *string  `json:"source"`
		Concurrency *float64 `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &fields); err != nil {
		return nil, false
	}
	if fields.Source == nil || *fields.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: WarmupSource}
	if c := fields.Concurrency; c != nil && *c > 0 {
		warmup.Concurrency = int(min(*c, MaxWarmupConcurrency))
	}
	return warmup, true
}

// functionInvoker is the subset of the Lambda API used for self-invocation.
type functionInvoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// newInvoker builds the Lambda API client from the execution role's credentials.
var newInvoker = func(ctx context.Context) (functionInvoker, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return lambdasdk.NewFromConfig(cfg), nil
}

// HandleWarmup processes a warmup event and optionally self-invokes
// to maintain multiple warm instances.
func HandleWarmup(ctx context.Context, warmup *WarmupEvent) (interface{}, error) {
	logger := log.WithComponentFromContext(ctx, "warmup")
	instancesWarmed := 1 // This instance counts as 1

	if warmup.Concurrency > 0 {
		concurrency := min(warmup.Concurrency, MaxWarmupConcurrency)
		invoked, err := selfInvoke(ctx, os.Getenv("AWS_LAMBDA_FUNCTION_NAME"), concurrency)
		if err != nil {
			logger.Warn().Err(err).Int("concurrency", concurrency).Msg("self-invocation failed")
		}
		instancesWarmed += invoked
	}

	// Brief delay to ensure instances overlap
	time.Sleep(WarmupDelay)

	logger.Debug().Int("instances_warmed", instancesWarmed).Msg("warm")
	return map[string]interface{}{
		"statusCode": 200,
		"body": WarmupResponse{
			Status:          "warm",
			InstancesWarmed: instancesWarmed,
		},
	}, nil
}

// selfInvoke fires count asynchronous invocations of functionName and reports
// how many were accepted.
func selfInvoke(ctx context.Context, functionName string, count int) (int, error) {
	client, err := newInvoker(ctx)
	if err != nil {
		return 0, err
	}

	// Child invocations carry concurrency 0 so they do not fan out again
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return 0, err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		errs     []error
	)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			accepted++
		}()
	}

	wg.Wait()
	return accepted, errors.Join(errs...)
}
