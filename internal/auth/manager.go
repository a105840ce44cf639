package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	// ErrConfig means neither a credentials file nor a client ID/secret pair was supplied.
	ErrConfig = errors.New("missing authentication configuration")

	// ErrCredentialsRead means the credentials file could not be read or parsed.
	ErrCredentialsRead = errors.New("unable to read credentials")

	// ErrTokenRead means no usable token was persisted. Authenticate recovers
	// from it by running the interactive exchange.
	ErrTokenRead = errors.New("unable to read token")

	// ErrInteractiveExchange means the operator's code could not be read or
	// was rejected by the authorization server.
	ErrInteractiveExchange = errors.New("authorization code exchange failed")

	// ErrTokenWrite means a token could not be persisted. It is logged and
	// never returned from Authenticate.
	ErrTokenWrite = errors.New("unable to write token")

	// ErrNotAuthenticated is returned when an authenticated handle is
	// requested before Authenticate succeeded.
	ErrNotAuthenticated = errors.New("not authenticated")
)

const (
	// DefaultTokenPath is used when Config.TokenPath is empty.
	DefaultTokenPath = "token.json"

	// SpreadsheetsScope grants read/write access to spreadsheets.
	SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

	stateToken = "state-token"
)

// Config holds the credential locations. These are the only recognised keys.
type Config struct {
	// CredentialsPath enables credentials-file mode when set.
	CredentialsPath string

	// TokenPath is where the token is cached. Defaults to DefaultTokenPath.
	TokenPath string
}

// State is the position of a Manager in its authentication lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authorizing
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authorizing:
		return "authorizing"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures a Manager
type Option func(*Manager)

// WithStore replaces the filesystem store used for credentials and tokens.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithPrompter replaces the console prompt used for the interactive exchange.
func WithPrompter(prompter Prompter) Option {
	return func(m *Manager) {
		m.prompter = prompter
	}
}

// WithEndpoint overrides the OAuth2 endpoint, whichever source the client
// credentials came from.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(m *Manager) {
		m.endpoint = &endpoint
	}
}

// WithScopes replaces the requested access scopes.
func WithScopes(scopes ...string) Option {
	return func(m *Manager) {
		m.scopes = scopes
	}
}

// Manager obtains and caches the OAuth2 token used to talk to Google Sheets.
//
// A token is loaded from TokenPath when possible. Otherwise the operator is
// asked to visit an authorization URL and type back the code, which is
// exchanged for a token and persisted. A Manager is not safe for concurrent
// use during Authenticate.
type Manager struct {
	config   Config
	store    Store
	prompter Prompter
	endpoint *oauth2.Endpoint
	scopes   []string

	state State
	oauth *oauth2.Config
	token *oauth2.Token
}

// NewManager creates a Manager with all defaults applied.
func NewManager(config Config, opts ...Option) *Manager {
	if strings.TrimSpace(config.TokenPath) == "" {
		config.TokenPath = DefaultTokenPath
	}

	m := &Manager{
		config:   config,
		store:    FileStore{},
		prompter: NewConsolePrompter(os.Stdin, os.Stdout),
		scopes:   []string{SpreadsheetsScope},
		state:    Unauthenticated,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Config returns the effective configuration
func (m *Manager) Config() Config {
	return m.config
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	return m.state
}

// Token returns the bound token, or nil before authentication.
func (m *Manager) Token() *oauth2.Token {
	return m.token
}

// Authenticate derives the OAuth2 client configuration from the credentials
// file or from clientID/clientSecret, then resolves a token. The credentials
// file takes precedence when both are available.
func (m *Manager) Authenticate(ctx context.Context, clientID, clientSecret string) error {
	hasCredentials := strings.TrimSpace(m.config.CredentialsPath) != ""
	if !hasCredentials && (clientID == "" || clientSecret == "") {
		return fmt.Errorf("%w: either pass a client ID and secret or specify a credentials path", ErrConfig)
	}

	m.state = Authorizing

	config, err := m.oauthConfig(clientID, clientSecret)
	if err != nil {
		m.state = Unauthenticated
		return err
	}

	token, err := m.resolveToken(ctx, config)
	if err != nil {
		m.state = Unauthenticated
		return err
	}

	m.oauth = config
	m.token = token
	m.state = Authenticated

	log.Debug().
		Str("token_path", m.config.TokenPath).
		Bool("credentials_file", hasCredentials).
		Msg("Authenticated")

	return nil
}

// Client returns an HTTP client that authorizes requests with the bound
// token. Refreshed tokens are written back to the token path.
func (m *Manager) Client(ctx context.Context) (*http.Client, error) {
	if m.state != Authenticated {
		return nil, ErrNotAuthenticated
	}

	source := &persistingTokenSource{
		base:    m.oauth.TokenSource(ctx, m.token),
		manager: m,
		last:    m.token.AccessToken,
	}

	return oauth2.NewClient(ctx, source), nil
}

func (m *Manager) oauthConfig(clientID, clientSecret string) (*oauth2.Config, error) {
	var config *oauth2.Config

	if strings.TrimSpace(m.config.CredentialsPath) != "" {
		b, err := m.store.Read(m.config.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCredentialsRead, m.config.CredentialsPath, err)
		}

		if config, err = google.ConfigFromJSON(b, m.scopes...); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCredentialsRead, m.config.CredentialsPath, err)
		}
	} else {
		config = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       m.scopes,
		}
	}

	if m.endpoint != nil {
		config.Endpoint = *m.endpoint
	}

	return config, nil
}

// resolveToken returns the persisted token if there is a usable one, and
// otherwise falls back to the interactive exchange.
func (m *Manager) resolveToken(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	token, err := m.loadToken()
	if err == nil {
		return token, nil
	}

	log.Info().
		Err(err).
		Str("token_path", m.config.TokenPath).
		Msg("Token not found, creating a new token")

	return m.exchange(ctx, config)
}

func (m *Manager) loadToken() (*oauth2.Token, error) {
	b, err := m.store.Read(m.config.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenRead, err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(b, token); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenRead, err)
	}

	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token has neither an access nor a refresh token", ErrTokenRead)
	}

	return token, nil
}

// exchange asks the operator for an authorization code and trades it for a
// token. The token is persisted before it is returned; a failed write is
// logged and otherwise ignored.
func (m *Manager) exchange(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	url := config.AuthCodeURL(stateToken, oauth2.AccessTypeOffline)

	code, err := m.prompter.Prompt(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInteractiveExchange, err)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: no authorization code entered", ErrInteractiveExchange)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: error while trying to retrieve access token: %w", ErrInteractiveExchange, err)
	}

	if err := m.saveToken(token); err != nil {
		log.Error().
			Err(err).
			Str("token_path", m.config.TokenPath).
			Msg("Failed to store token, continuing with in-memory token")
	} else {
		log.Info().
			Str("token_path", m.config.TokenPath).
			Msg("Token stored")
	}

	return token, nil
}

func (m *Manager) saveToken(token *oauth2.Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenWrite, err)
	}

	if err := m.store.Write(m.config.TokenPath, b); err != nil {
		return fmt.Errorf("%w: %w", ErrTokenWrite, err)
	}

	return nil
}

// persistingTokenSource writes a token back to the store whenever the
// underlying source hands out a new access token.
type persistingTokenSource struct {
	base    oauth2.TokenSource
	manager *Manager

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := s.manager.saveToken(token); err != nil {
			log.Warn().Err(err).Msg("Failed to store refreshed token")
		}
	}

	return token, nil
}
