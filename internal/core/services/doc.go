// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
// User-facing outcomes are reported as domain.Response values;
// infrastructure failures are also logged.
package services
