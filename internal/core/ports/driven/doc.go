// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Generates vector embeddings for chunks and queries
//   - VectorIndex: In-memory vector storage and nearest-neighbour search
//   - ChunkStore: Chunk persistence, used to rebuild the index at startup
//   - CaptionSource: Streams transcripts from the caption archive
//
// # Optional Interfaces
//
//   - LLMService: Answer generation. Without it, ask is disabled but
//     search and stats still work.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
