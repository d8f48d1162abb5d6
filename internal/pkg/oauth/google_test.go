package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewGoogleOAuth(t *testing.T) {
	g := NewGoogleOAuth("client-id", "client-secret", "http://localhost/callback")

	assert.Equal(t, "client-id", g.config.ClientID)
	assert.Equal(t, "http://localhost/callback", g.config.RedirectURL)
	assert.ElementsMatch(t, []string{"openid", "email", "profile"}, g.config.Scopes)
}

func TestGoogleOAuth_GetAuthURL(t *testing.T) {
	g := NewGoogleOAuth("test-client-id", "test-secret", "http://example.com/callback")

	url := g.GetAuthURL("test-state")

	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "client_id=test-client-id")
	assert.Contains(t, url, "state=test-state")
	assert.Contains(t, url, "prompt=select_account")
}

func TestGoogleOAuth_GetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"1098","email":"ana@example.com","email_verified":true,"name":"Ana Lima","picture":"https://example.com/a.png"}`))
	}))
	defer server.Close()

	g := NewGoogleOAuth("id", "secret", "http://localhost/callback")
	g.userInfoURL = server.URL

	t.Run("valid token", func(t *testing.T) {
		user, err := g.GetUser(context.Background(), &oauth2.Token{AccessToken: "test-token"})
		require.NoError(t, err)
		assert.Equal(t, "1098", user.Sub)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.True(t, user.EmailVerified)
		assert.Equal(t, "Ana Lima", user.Name)
	})

	t.Run("rejected token", func(t *testing.T) {
		_, err := g.GetUser(context.Background(), &oauth2.Token{AccessToken: "bad"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid_token")
	})
}

func TestGoogleOAuth_GetUser_MissingSubject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"x@example.com"}`))
	}))
	defer server.Close()

	g := NewGoogleOAuth("id", "secret", "")
	g.userInfoURL = server.URL

	_, err := g.GetUser(context.Background(), &oauth2.Token{AccessToken: "t"})
	assert.Error(t, err)
}
