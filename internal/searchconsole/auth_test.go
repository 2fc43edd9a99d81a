package searchconsole

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

func testPrivateKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

func tokenServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.PostForm.Get("grant_type"))
		assert.NotEmpty(t, r.PostForm.Get("assertion"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid JWT Signature."}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthenticate_EnvCredentials(t *testing.T) {
	srv := tokenServer(t, http.StatusOK)
	creds := &Credentials{Source: SourceEnv, ClientEmail: "svc@example.iam.gserviceaccount.com", PrivateKey: testPrivateKey(t)}

	ts, err := Authenticator{TokenURL: srv.URL, HTTPClient: srv.Client()}.Authenticate(context.Background(), creds)
	require.NoError(t, err)
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "test-token", tok.AccessToken)
}

func TestAuthenticate_KeyFileFillsEmail(t *testing.T) {
	srv := tokenServer(t, http.StatusOK)
	data, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": "file@example.iam.gserviceaccount.com",
		"private_key":  testPrivateKey(t),
		"token_uri":    srv.URL,
	})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	creds := &Credentials{Source: SourceFile, KeyFile: path}
	_, err = Authenticator{HTTPClient: srv.Client()}.Authenticate(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "file@example.iam.gserviceaccount.com", creds.ClientEmail)
}

func TestAuthenticate_TokenRejected(t *testing.T) {
	srv := tokenServer(t, http.StatusBadRequest)
	creds := &Credentials{Source: SourceEnv, ClientEmail: "svc@example.com", PrivateKey: testPrivateKey(t)}

	_, err := Authenticator{TokenURL: srv.URL, HTTPClient: srv.Client()}.Authenticate(context.Background(), creds)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryAuth))
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no source", Credentials{}},
		{"missing key file", Credentials{Source: SourceFile, KeyFile: filepath.Join(t.TempDir(), "missing.json")}},
		{"bad private key", Credentials{Source: SourceEnv, ClientEmail: "svc@example.com", PrivateKey: "not a key"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := tt.creds
			_, err := Authenticator{TokenURL: "http://127.0.0.1:0/token"}.Authenticate(context.Background(), &creds)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryAuth))
		})
	}
}
