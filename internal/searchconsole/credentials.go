package searchconsole

import (
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/docstats/internal/config"
	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// CredentialSource tells where the service account came from.
type CredentialSource string

const (
	SourceEnv  CredentialSource = "env"
	SourceFile CredentialSource = "file"
)

// Credentials identify the service account used for the API.
type Credentials struct {
	Source      CredentialSource
	ClientEmail string // known up front for env credentials, read from the key file otherwise
	PrivateKey  string // PEM, env credentials only
	KeyFile     string // file credentials only
}

// ResolveCredentials prefers GOOGLE_CLIENT_EMAIL with GOOGLE_PRIVATE_KEY, then the
// first existing key file among GOOGLE_KEY_FILE_PATH and keyFiles. The bool is
// false when nothing was found; configuration guidance is logged in that case.
func ResolveCredentials(e config.Env, keyFiles []string) (Credentials, bool) {
	email := strings.TrimSpace(e.GoogleClientEmail)
	if email != "" && e.GooglePrivateKey != "" {
		slog.Info("Using Google service account from environment", slog.String("client_email", email))
		return Credentials{
			Source:      SourceEnv,
			ClientEmail: email,
			PrivateKey:  expandNewlines(e.GooglePrivateKey),
		}, true
	}

	candidates := make([]string, 0, len(keyFiles)+1)
	if p := strings.TrimSpace(e.GoogleKeyFilePath); p != "" {
		candidates = append(candidates, p)
	}
	for _, p := range keyFiles {
		if p = strings.TrimSpace(p); p != "" {
			candidates = append(candidates, p)
		}
	}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			slog.Info("Using Google service account key file", logfields.Path(p))
			return Credentials{Source: SourceFile, KeyFile: p}, true
		}
	}

	slog.Warn("Google API credentials not found; skipping Search Console fetch",
		slog.String("hint", "set GOOGLE_CLIENT_EMAIL and GOOGLE_PRIVATE_KEY or point GOOGLE_KEY_FILE_PATH at a service account key file"),
		slog.String("tried", strings.Join(candidates, ", ")))
	return Credentials{}, false
}

// expandNewlines turns literal \n sequences, as stored in single-line env values, into newlines.
func expandNewlines(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
