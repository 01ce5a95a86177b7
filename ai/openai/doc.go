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


// Package openai provides an oracle implementation using OpenAI-compatible APIs.
//
// This package implements the ai.Oracle interface using the langchaingo
// library to communicate with OpenAI or OpenAI-compatible services (such as
// Ollama, LocalAI, or vLLM). Every call carries a per-call timeout and is
// retried with exponential backoff on transient failure.
//
// # Usage
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),  // /v1 added automatically
//	    ai.WithModel("qwen2.5:3b"),
//	)
//
//	oracle, err := openai.NewOracle(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	response, err := oracle.Complete(ctx, prompt)
package openai
