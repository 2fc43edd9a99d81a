// Package watch keeps the stats artifact current during local preview
// sessions: a recursive fsnotify watcher regenerates it after Markdown
// changes settle, and an optional gocron job refreshes the analytics.
package watch
