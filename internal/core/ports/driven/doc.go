// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentStore: Document metadata persistence (SQLite, PostgreSQL, memory)
//   - Corpus: The append-only in-process chunk collection
//   - Normaliser: Extracts plain text from one file format
//   - NormaliserRegistry: Selects a normaliser by file extension
//   - PostProcessor / PostProcessorPipeline: Turns document text into chunks
//   - Ranker: Scores and orders chunks for a query
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
