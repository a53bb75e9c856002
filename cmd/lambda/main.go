package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummisolve/api"
	"github.com/domino14/rummisolve/config"
)

// HardTimeLimitMs caps a single invocation's search regardless of the
// request, to stay inside the function timeout.
const HardTimeLimitMs = 30000

func HandleRequest(ctx context.Context, req api.SolveRequest) (api.SolveResponse, error) {
	logger := log.With().
		Int("hand-size", len(req.Hand)).
		Int("table-size", len(req.Table)).
		Logger()

	if req.TimeLimitMs <= 0 || req.TimeLimitMs > HardTimeLimitMs {
		req.TimeLimitMs = HardTimeLimitMs
	}
	resp := api.Solve(ctx, req)
	logger.Info().Bool("success", resp.Success).
		Bool("completed", resp.SearchCompleted).
		Msg("solve-handled")
	// Malformed input is reported inside the response, never as a
	// function error; the caller always gets the envelope.
	return resp, nil
}

func main() {
	cfg := config.Load()
	cfg.AdjustLogLevel()
	lambda.Start(HandleRequest)
}
