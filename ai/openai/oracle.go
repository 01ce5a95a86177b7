// Copyright 2025 Kaiser Guy
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"
	"time"

	"github.com/kaiserguy/ai-questions-sub000/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Oracle implements ai.Oracle using OpenAI-compatible chat APIs.
type Oracle struct {
	client         llms.Model
	temperature    float64
	callTimeout    time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// newOracle is an internal constructor that returns the concrete type.
func newOracle(config *ai.Config) (*Oracle, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Oracle{
		client:         client,
		temperature:    config.Temperature,
		callTimeout:    config.CallTimeout,
		maxRetries:     config.MaxRetries,
		retryBaseDelay: config.RetryBaseDelay,
		logger:         slog.Default().With("component", "openai-oracle"),
	}, nil
}

// NewOracle creates a new oracle backed by an OpenAI-compatible chat API.
//
// Returns ai.Oracle interface to enforce abstraction.
func NewOracle(config *ai.Config) (ai.Oracle, error) {
	return newOracle(config)
}

// Complete sends a prompt to the model and returns the raw response text.
// Each attempt carries its own deadline; transient failures are retried with
// exponential backoff. The response is returned exactly as the model produced
// it; callers are responsible for treating it as untrusted text.
func (o *Oracle) Complete(ctx context.Context, prompt string) (string, error) {
	var response string
	err := retryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
		defer cancel()

		out, err := llms.GenerateFromSinglePrompt(callCtx, o.client, prompt,
			llms.WithTemperature(o.temperature))
		if err != nil {
			return err
		}
		response = out
		return nil
	}, o.maxRetries, o.retryBaseDelay)

	if err != nil {
		o.logger.Error("oracle call failed", "maxRetries", o.maxRetries, "err", err)
		return "", err
	}

	return response, nil
}
