// invoke runs a skill event through the handler locally, outside Lambda.
//
// Usage:
//
//	invoke -event testdata/launch.json
//	invoke -event intent.json -config ./config.json
//
// Variables in a .env file in the working directory are loaded first.
//
// Exit codes:
//   - 0: the invocation succeeded (envelope or null printed to stdout)
//   - 1: the invocation failed
//   - 2: usage error
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/pricofy/video-releases-skill/internal/config"
	"github.com/pricofy/video-releases-skill/internal/domain"
	"github.com/pricofy/video-releases-skill/internal/handler"
	"github.com/pricofy/video-releases-skill/internal/log"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}
	log.Configure(log.Config{Output: os.Stderr})

	os.Exit(run(context.Background(), handler.New(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, h *handler.Handler, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("invoke", flag.ContinueOnError)
	fs.SetOutput(stderr)
	eventPath := fs.String("event", "", "path to a skill event JSON file")
	configPath := fs.String("config", "", "path to the skill configuration (default $LAMBDA_TASK_ROOT/"+config.FileName+")")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *eventPath == "" {
		fmt.Fprintln(stderr, "Error: -event is required")
		return 2
	}
	if *configPath != "" {
		h.ConfigPath = *configPath
	}

	raw, err := os.ReadFile(*eventPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	var ev domain.Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		fmt.Fprintf(stderr, "Error: malformed event %s: %v\n", *eventPath, err)
		return 1
	}

	env, err := h.Handle(ctx, ev)
	if err != nil {
		fmt.Fprintf(stderr, "Invocation failed: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if env == nil {
		_ = enc.Encode(nil)
		return 0
	}
	if err := enc.Encode(env); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
