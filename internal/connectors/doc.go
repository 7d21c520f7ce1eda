// Package connectors provides implementations of the CaptionSource
// interface. Each connector knows how to obtain transcripts from a
// specific place; the captions subpackage reads a local channel archive.
package connectors
