package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hanwool95/game-socket-server/internal/domain"
)

const defaultMaxID = 1025

type Option func(*options)

type options struct {
	client *http.Client
	pick   func(n int) int
}

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithPicker replaces the random index source. pick(n) must return a value
// in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(o *options) {
		if pick != nil {
			o.pick = pick
		}
	}
}

func buildOptions(timeout time.Duration, opts []Option) options {
	o := options{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		pick: rand.IntN,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PokeAPI fetches a random pokemon from a PokeAPI-compatible service.
type PokeAPI struct {
	baseURL string
	apiKey  string
	maxID   int
	client  *http.Client
	pick    func(n int) int
}

type pokemonResponse struct {
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

func NewPokeAPI(baseURL, apiKey string, maxID int, timeout time.Duration, opts ...Option) *PokeAPI {
	if maxID <= 0 {
		maxID = defaultMaxID
	}
	o := buildOptions(timeout, opts)
	return &PokeAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		maxID:   maxID,
		client:  o.client,
		pick:    o.pick,
	}
}

func (p *PokeAPI) FetchRandomSecret(ctx context.Context) (domain.Secret, error) {
	id := p.pick(p.maxID) + 1
	url := fmt.Sprintf("%s/pokemon/%d", p.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Secret{}, err
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Secret{}, fmt.Errorf("%w: %w", domain.ErrSecretUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Secret{}, fmt.Errorf("%w: pokemon %d returned status %d", domain.ErrSecretUnavailable, id, resp.StatusCode)
	}

	var body pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Secret{}, fmt.Errorf("%w: decode pokemon %d: %w", domain.ErrSecretUnavailable, id, err)
	}
	if body.Name == "" || body.Sprites.FrontDefault == "" {
		return domain.Secret{}, fmt.Errorf("%w: pokemon %d has no name or sprite", domain.ErrSecretUnavailable, id)
	}

	return domain.Secret{
		DisplayName: body.Name,
		MediaRef:    body.Sprites.FrontDefault,
	}, nil
}

var ErrNoStaticSecrets = errors.New("static provider needs at least one secret")

// Static picks from a fixed list. Used offline and in tests.
type Static struct {
	secrets []domain.Secret
	pick    func(n int) int
}

func NewStatic(secrets []domain.Secret, opts ...Option) (*Static, error) {
	kept := make([]domain.Secret, 0, len(secrets))
	for _, s := range secrets {
		if s.DisplayName != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoStaticSecrets
	}
	o := buildOptions(0, opts)
	return &Static{secrets: kept, pick: o.pick}, nil
}

func (s *Static) FetchRandomSecret(ctx context.Context) (domain.Secret, error) {
	if err := ctx.Err(); err != nil {
		return domain.Secret{}, err
	}
	return s.secrets[s.pick(len(s.secrets))], nil
}
