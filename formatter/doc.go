// Package formatter serializes batch reports for presentation collaborators.
//
// This package is organized into:
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// XML serialization is done manually for precise control over output format.
package formatter
