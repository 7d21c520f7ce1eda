// Package sqlite provides a SQLite-backed chunk store.
//
// The store is the durable side of the system: chunks and their
// embeddings are written here during ingestion, and the in-memory vector
// index is rebuilt from this store at startup.
package sqlite
