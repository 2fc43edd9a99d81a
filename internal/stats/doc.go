// Package stats defines the stats.json artifact and the operations on it:
// assembling and atomically writing the document, publishing copies into
// build-output directories, and deriving dashboard summaries.
package stats
