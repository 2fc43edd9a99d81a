// Package searchconsole fetches search analytics for the site from the
// Google Search Console API with a service account.
//
// Every failure degrades: missing credentials, authentication errors and an
// empty totals query make the summary absent, while failures of the
// previous-window, per-day and per-page queries only empty their own field.
// Nothing here aborts the build.
package searchconsole
