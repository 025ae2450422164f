package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/provider"
)

func fixedPick(i int) provider.Option {
	return provider.WithPicker(func(int) int { return i })
}

func TestPokeAPI_FetchRandomSecret(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":25,"name":"pikachu","sprites":{"front_default":"https://img/25.png","back_default":"x"}}`))
	}))
	defer srv.Close()

	p := provider.NewPokeAPI(srv.URL+"/", "secret-key", 151, time.Second, fixedPick(24))
	secret, err := p.FetchRandomSecret(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/pokemon/25", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, domain.Secret{DisplayName: "pikachu", MediaRef: "https://img/25.png"}, secret)
}

func TestPokeAPI_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"name":`))
			},
		},
		{
			name: "missing sprite",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"name":"missingno","sprites":{"front_default":null}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := provider.NewPokeAPI(srv.URL, "", 10, time.Second, fixedPick(0))
			_, err := p.FetchRandomSecret(context.Background())
			assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
		})
	}
}

func TestPokeAPI_HonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	p := provider.NewPokeAPI(srv.URL, "", 10, time.Minute, fixedPick(0))
	_, err := p.FetchRandomSecret(ctx)
	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStatic(t *testing.T) {
	_, err := provider.NewStatic([]domain.Secret{{MediaRef: "no-name"}})
	assert.ErrorIs(t, err, provider.ErrNoStaticSecrets)

	p, err := provider.NewStatic([]domain.Secret{
		{DisplayName: "pikachu", MediaRef: "a"},
		{DisplayName: "eevee", MediaRef: "b"},
	}, fixedPick(1))
	require.NoError(t, err)

	secret, err := p.FetchRandomSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "eevee", secret.DisplayName)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.FetchRandomSecret(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
