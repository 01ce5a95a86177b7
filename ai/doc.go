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


// Package ai provides the oracle abstraction used by the search engine.
//
// The search engine talks to a language model through one narrow interface:
//
//   - Oracle: prompt in, raw text out
//
// The oracle is used both to synthesize corpus filter predicates and to judge
// document relevance, and its output is never trusted. Response parsing and
// safety validation live with the callers; this package only moves text.
//
// # Implementation Packages
//
//   - ai/openai: production implementation over OpenAI-compatible chat APIs
//     (Ollama, LocalAI, vLLM, OpenAI) with per-call timeouts and retry
//   - ai/mock: scriptable test double for unit tests
//
// Production constructors return the Oracle interface to prevent coupling to
// a concrete backend; mock constructors return concrete types so tests can
// script responses and assert on recorded prompts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithModel("qwen2.5:3b"),
//	)
//	oracle, err := openai.NewOracle(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	response, err := oracle.Complete(ctx, "Score these articles ...")
package ai
