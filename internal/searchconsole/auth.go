package searchconsole

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

// Scope is the read-only Search Console scope.
const Scope = "https://www.googleapis.com/auth/webmasters.readonly"

// Authenticator exchanges service account credentials for an access token.
type Authenticator struct {
	// TokenURL overrides the OAuth2 token endpoint; empty means Google's.
	TokenURL string
	// HTTPClient is used for the token exchange; nil means http.DefaultClient.
	HTTPClient *http.Client
}

type keyFile struct {
	ClientEmail string `json:"client_email"`
}

// Authenticate builds a token source for creds and fetches the first token
// eagerly, so bad credentials surface before any query runs. creds.ClientEmail
// is filled in from the key file when needed.
func (a Authenticator) Authenticate(ctx context.Context, creds *Credentials) (oauth2.TokenSource, error) {
	if a.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.HTTPClient)
	}

	var cfg *jwt.Config
	switch creds.Source {
	case SourceEnv:
		cfg = &jwt.Config{
			Email:      creds.ClientEmail,
			PrivateKey: []byte(creds.PrivateKey),
			Scopes:     []string{Scope},
			TokenURL:   google.JWTTokenURL,
		}
	case SourceFile:
		data, err := os.ReadFile(creds.KeyFile) // #nosec G304 -- operator configured key file
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryAuth, "failed to read service account key file").
				WithContext("path", creds.KeyFile).
				WithHint("check GOOGLE_KEY_FILE_PATH or search_console.key_files").
				Build()
		}
		var kf keyFile
		if jerr := json.Unmarshal(data, &kf); jerr == nil && creds.ClientEmail == "" {
			creds.ClientEmail = kf.ClientEmail
		}
		cfg, err = google.JWTConfigFromJSON(data, Scope)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryAuth, "invalid service account key file").
				WithContext("path", creds.KeyFile).
				WithHint("download a fresh JSON key for the service account").
				Build()
		}
	default:
		return nil, errors.AuthError("missing authentication credential").Build()
	}
	if a.TokenURL != "" {
		cfg.TokenURL = a.TokenURL
	}

	ts := cfg.TokenSource(ctx)
	tok, err := ts.Token()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryAuth, "JWT token exchange failed").
			WithContext("client_email", creds.ClientEmail).
			WithHint("check GOOGLE_CLIENT_EMAIL and GOOGLE_PRIVATE_KEY").
			Build()
	}
	if tok.AccessToken == "" {
		return nil, errors.AuthError("JWT token exchange returned no access token").
			WithContext("client_email", creds.ClientEmail).
			Build()
	}
	return oauth2.ReuseTokenSource(tok, ts), nil
}
