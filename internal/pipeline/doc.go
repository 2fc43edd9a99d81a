// Package pipeline runs one stats generation: scan the content history, fetch
// the optional analytics summary and write the artifact. A failed run still
// leaves the minimal artifact behind.
package pipeline
