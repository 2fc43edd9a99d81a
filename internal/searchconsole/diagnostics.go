package searchconsole

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// Guidance kinds reported by Diagnose.
const (
	GuidancePermission = "permission"
	GuidanceCredential = "credential"
	GuidanceMissing    = "missing_credential"
	GuidanceNone       = ""
)

// Diagnose logs an operator-facing explanation of err and returns the guidance kind.
// It never fails: diagnostics are informational only.
func Diagnose(err error, clientEmail string) string {
	if err == nil {
		return GuidanceNone
	}
	slog.Error("Search Console request failed", logfields.Error(err))

	status, body := httpDetails(err)
	if status != 0 {
		slog.Error("Search Console response", logfields.Status(status), slog.String("body", body))
	}

	msg := err.Error()
	switch {
	case status == http.StatusForbidden || strings.Contains(msg, "403"):
		email := clientEmail
		if email == "" {
			email = "unknown"
		}
		slog.Error("Search Console API is not enabled or the service account lacks access",
			slog.String("enable_api", "https://console.cloud.google.com/apis/library/searchconsole.googleapis.com"),
			slog.String("grant_access", "https://search.google.com/search-console (Settings > Users and permissions)"),
			slog.String("service_account", email))
		return GuidancePermission
	case status == http.StatusUnauthorized || strings.Contains(msg, "401"):
		slog.Error("Authentication failed: check the service account key or the JWT token exchange")
		return GuidanceCredential
	case strings.Contains(msg, "authentication credential"):
		slog.Error("No authentication credential was sent: the token exchange failed or the service account is not registered for the property")
		return GuidanceMissing
	}
	return GuidanceNone
}

func httpDetails(err error) (int, string) {
	var gerr *googleapi.Error
	if stderrors.As(err, &gerr) {
		return gerr.Code, gerr.Body
	}
	var rerr *oauth2.RetrieveError
	if stderrors.As(err, &rerr) && rerr.Response != nil {
		return rerr.Response.StatusCode, string(rerr.Body)
	}
	return 0, ""
}
