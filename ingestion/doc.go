// Package ingestion loads article dumps into the corpus store.
//
// A Pipeline reads newline-delimited JSON article records, validates them,
// and writes them to the corpus in batched transactions. Malformed or
// invalid records are counted and skipped rather than failing the run;
// reingesting the same dump is idempotent because document identity is
// derived from content hashing.
package ingestion
