// Package normalisers provides implementations of the CaptionNormaliser
// interface for the caption formats found in a channel archive. Each
// normaliser knows how to strip the framing of one format down to plain
// transcript text.
//
// Selection is by filename suffix via the Registry.
package normalisers
