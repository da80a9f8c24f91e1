package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/iam-policy-generator/internal/config"
	apierrors "github.com/iam-policy-generator/internal/errors"
)

// Client identifies the caller behind an API key
type Client struct {
	ClientID    string
	Description string
}

// KeyStore resolves bearer tokens to clients
type KeyStore interface {
	// Lookup returns the client owning token
	Lookup(token string) (*Client, error)
	// Reload reloads keys from the configuration file
	Reload() error
}

// InMemoryKeyStore stores API keys in memory, loaded from a config file
type InMemoryKeyStore struct {
	mu         sync.RWMutex
	keys       map[string]*Client
	configPath string
}

// NewInMemoryKeyStore creates a new in-memory key store
func NewInMemoryKeyStore(configPath string) (*InMemoryKeyStore, error) {
	store := &InMemoryKeyStore{
		keys:       make(map[string]*Client),
		configPath: configPath,
	}

	if err := store.Reload(); err != nil {
		return nil, err
	}

	return store, nil
}

// Lookup returns the client owning token
func (s *InMemoryKeyStore) Lookup(token string) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for known, client := range s.keys {
		if subtle.ConstantTimeCompare([]byte(known), []byte(token)) == 1 {
			return client, nil
		}
	}

	return nil, fmt.Errorf("unknown api key")
}

// Reload reloads keys from the configuration file
func (s *InMemoryKeyStore) Reload() error {
	cfg, err := config.LoadCredentials(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	newKeys := make(map[string]*Client, len(cfg.Keys))
	for _, k := range cfg.Keys {
		newKeys[k.Token] = &Client{
			ClientID:    k.ClientID,
			Description: k.Description,
		}
	}

	s.mu.Lock()
	s.keys = newKeys
	s.mu.Unlock()

	return nil
}

type clientKey struct{}

// ClientFromContext returns the authenticated client, if any
func ClientFromContext(ctx context.Context) (*Client, bool) {
	c, ok := ctx.Value(clientKey{}).(*Client)
	return c, ok
}

// WithClient returns a context carrying client
func WithClient(ctx context.Context, client *Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

// Middleware rejects requests without a known bearer token.
// A nil store disables authentication.
func Middleware(store KeyStore, requestID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				apierrors.WriteError(w, apierrors.New(apierrors.CodeUnauthorized, "missing bearer token", requestID(r)))
				return
			}

			client, err := store.Lookup(token)
			if err != nil {
				apierrors.WriteError(w, apierrors.New(apierrors.CodeUnauthorized, "invalid api key", requestID(r)))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), client)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
