// Package document contains the executive summary content model.
//
// A Payload is authored alongside the service and loaded once at start. It is
// immutable: every accessor returns a copy, and there are no setters. The same
// Payload is rendered for every RenderMode; only its visual treatment differs.
package document
