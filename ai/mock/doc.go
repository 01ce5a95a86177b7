// Package mock provides a test double implementation of the oracle interface.
//
// MockOracle lets tests run without an external language model and with
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Scripted responses, consumed one per call
//	oracle := mock.NewScriptedOracle(
//	    "SELECT id, title, summary FROM articles WHERE title LIKE '%Paris%'",
//	    "[85, 40, 10]",
//	)
//
//	// Custom behavior injection
//	oracle := mock.NewMockOracle()
//	oracle.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
//	    return "[90]", nil
//	}
//
//	// Assertions on recorded calls
//	count := oracle.CallCount()
//	prompts := oracle.Prompts()
package mock
