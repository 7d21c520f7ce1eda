// Package services implements the driving port interfaces.
// Services hold the retrieval, answering, and ingestion logic and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go; provider specifics live in the adapters.
package services
