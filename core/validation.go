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


package core

import "fmt"

// ValidateBudget validates a SearchBudget according to domain rules.
//
// Validation rules:
//   - MaxRefinementAttempts must be at least 1
//   - MaxResultCardinality must be at least 1
//   - BatchSize must be at least 1
//   - MaxResults must be at least 1 and no larger than MaxResultCardinality
func ValidateBudget(budget SearchBudget) error {
	if budget.MaxRefinementAttempts < 1 {
		return fmt.Errorf("%w: MaxRefinementAttempts must be at least 1", ErrInvalidBudget)
	}
	if budget.MaxResultCardinality < 1 {
		return fmt.Errorf("%w: MaxResultCardinality must be at least 1", ErrInvalidBudget)
	}
	if budget.BatchSize < 1 {
		return fmt.Errorf("%w: BatchSize must be at least 1", ErrInvalidBudget)
	}
	if budget.MaxResults < 1 {
		return fmt.Errorf("%w: MaxResults must be at least 1", ErrInvalidBudget)
	}
	if budget.MaxResults > budget.MaxResultCardinality {
		return fmt.Errorf("%w: MaxResults cannot exceed MaxResultCardinality", ErrInvalidBudget)
	}
	return nil
}

// ValidateDocument validates a CorpusDocument according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Content must not be empty
//
// NOT validated:
//   - ID (0 means "derive from content at ingestion time")
//   - Summary and Categories (optional in the source corpus)
func ValidateDocument(doc *CorpusDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}
	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}
	return nil
}

// ClampScore clamps a relevance score to the valid [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
