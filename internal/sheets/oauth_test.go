package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCallbackHandler(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode string
		wantErr  string
		status   int
	}{
		{name: "accepts code", query: "?state=abc&code=xyz", wantCode: "xyz", status: http.StatusOK},
		{name: "rejects wrong state", query: "?state=zzz&code=xyz", wantErr: "state mismatch", status: http.StatusBadRequest},
		{name: "reports denial", query: "?state=abc&error=access_denied", wantErr: "access_denied", status: http.StatusBadRequest},
		{name: "requires code", query: "?state=abc", wantErr: "no authorization code", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := make(chan string, 1)
			errs := make(chan error, 1)
			rec := httptest.NewRecorder()

			callbackHandler("abc", codes, errs)(rec, httptest.NewRequest(http.MethodGet, "/callback"+tt.query, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.wantErr != "" {
				require.Len(t, errs, 1)
				assert.Contains(t, (<-errs).Error(), tt.wantErr)
				assert.Empty(t, codes)
				return
			}
			require.Len(t, codes, 1)
			assert.Equal(t, tt.wantCode, <-codes)
		})
	}
}

func TestTokenCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}

	require.NoError(t, saveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, loaded.Expiry.Equal(token.Expiry))

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestGetOrCreateTokenUsesValidCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, saveToken(path, &oauth2.Token{
		AccessToken: "still-good",
		Expiry:      time.Now().Add(time.Hour),
	}))

	token, err := GetOrCreateToken(context.Background(), OAuth2Config{TokenFile: path})
	require.NoError(t, err)
	assert.Equal(t, "still-good", token.AccessToken)
}
