// Package connectors provides document sources that feed the ingest service
// from outside the upload transports.
//
// Connectors:
//   - filesystem: scans a directory and watches it for new or changed files
package connectors
