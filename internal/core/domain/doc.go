// Package domain defines the core business entities for docchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: The metadata record for an uploaded text or file
//   - Chunk: A bounded-length substring of a document, tagged with its source
//   - SearchResult: A chunk paired with its keyword score
//   - RawFile: Opaque bytes handed to a file loader
//   - Response: The success/error result returned at every boundary
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
