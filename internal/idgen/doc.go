// Package idgen centralises identifier generation for benchmark runs and
// queue messages so tests can substitute a deterministic source.
package idgen
