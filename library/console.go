package library

import (
	"context"

	"github.com/libreshelf/library-console-go/resource"
	"github.com/libreshelf/library-console-go/resource/syncstore"
	"github.com/libreshelf/library-console-go/restclient"
)

// ConsoleOption defines a functional option for configuring a Console.
type ConsoleOption func(*consoleConfig) error

type consoleConfig struct {
	logger           resource.Logger
	contextualLogger resource.ContextualLogger
	metricsCollector resource.MetricsCollector
	httpClient       restclient.HTTPDoer
}

// WithLogger sets the logger for all stores and endpoints of the Console.
func WithLogger(logger resource.Logger) ConsoleOption {
	return func(c *consoleConfig) error {
		c.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for all stores of the Console.
func WithContextualLogger(logger resource.ContextualLogger) ConsoleOption {
	return func(c *consoleConfig) error {
		c.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for all stores of the Console.
func WithMetrics(collector resource.MetricsCollector) ConsoleOption {
	return func(c *consoleConfig) error {
		c.metricsCollector = collector
		return nil
	}
}

// WithHTTPClient sets the HTTP transport for all endpoints of the Console.
func WithHTTPClient(client restclient.HTTPDoer) ConsoleOption {
	return func(c *consoleConfig) error {
		if client == nil {
			return restclient.ErrNilHTTPClient
		}
		c.httpClient = client
		return nil
	}
}

// Console aggregates one store and one edit session per managed collection,
// all bound to the same remote API base URL. Each instance owns its
// collections exclusively; there is no ambient shared state, so consumers
// receive their Console explicitly.
type Console struct {
	Authors       *syncstore.Store[Author, AuthorDraft]
	AuthorSession *syncstore.EditSession[Author, AuthorDraft]

	Books       *syncstore.Store[Book, BookDraft]
	BookSession *syncstore.EditSession[Book, BookDraft]

	Members       *syncstore.Store[Member, MemberDraft]
	MemberSession *syncstore.EditSession[Member, MemberDraft]

	Borrows *BorrowStore
}

// NewConsole wires endpoints, stores and edit sessions for all four
// collections against the API at baseURL. Collections start empty; call
// LoadAll to initialize them.
func NewConsole(baseURL string, options ...ConsoleOption) (*Console, error) {
	cfg := consoleConfig{}
	for _, option := range options {
		if err := option(&cfg); err != nil {
			return nil, err
		}
	}

	console := &Console{}

	if err := console.wireAuthors(baseURL, cfg); err != nil {
		return nil, err
	}

	if err := console.wireBooks(baseURL, cfg); err != nil {
		return nil, err
	}

	if err := console.wireMembers(baseURL, cfg); err != nil {
		return nil, err
	}

	if err := console.wireBorrows(baseURL, cfg); err != nil {
		return nil, err
	}

	return console, nil
}

// LoadAll fetches all four collections. It stops at the first failure so the
// caller can surface it; already loaded collections keep their snapshots.
func (c *Console) LoadAll(ctx context.Context) error {
	if err := c.Authors.Load(ctx); err != nil {
		return err
	}

	if err := c.Books.Load(ctx); err != nil {
		return err
	}

	if err := c.Members.Load(ctx); err != nil {
		return err
	}

	return c.Borrows.Load(ctx)
}

func (c *Console) wireAuthors(baseURL string, cfg consoleConfig) error {
	endpoint, err := NewAuthorEndpoint(baseURL, endpointOptions[Author, AuthorDraft](cfg)...)
	if err != nil {
		return err
	}

	c.Authors, err = syncstore.New[Author, AuthorDraft](
		endpoint, storeOptions[Author, AuthorDraft]("authors", cfg)...)
	if err != nil {
		return err
	}

	c.AuthorSession, err = syncstore.NewEditSession(c.Authors, AuthorDraftFrom)

	return err
}

func (c *Console) wireBooks(baseURL string, cfg consoleConfig) error {
	endpoint, err := NewBookEndpoint(baseURL, endpointOptions[Book, BookDraft](cfg)...)
	if err != nil {
		return err
	}

	c.Books, err = syncstore.New[Book, BookDraft](
		endpoint, storeOptions[Book, BookDraft]("books", cfg)...)
	if err != nil {
		return err
	}

	c.BookSession, err = syncstore.NewEditSession(c.Books, BookDraftFrom)

	return err
}

func (c *Console) wireMembers(baseURL string, cfg consoleConfig) error {
	endpoint, err := NewMemberEndpoint(baseURL, endpointOptions[Member, MemberDraft](cfg)...)
	if err != nil {
		return err
	}

	c.Members, err = syncstore.New[Member, MemberDraft](
		endpoint, storeOptions[Member, MemberDraft]("members", cfg)...)
	if err != nil {
		return err
	}

	c.MemberSession, err = syncstore.NewEditSession(c.Members, MemberDraftFrom)

	return err
}

func (c *Console) wireBorrows(baseURL string, cfg consoleConfig) error {
	endpoint, err := NewBorrowEndpoint(baseURL, endpointOptions[BorrowRecord, BorrowDraft](cfg)...)
	if err != nil {
		return err
	}

	c.Borrows, err = NewBorrowStore(endpoint, storeOptions[BorrowRecord, BorrowDraft]("borrowrecords", cfg)...)

	return err
}

func endpointOptions[T resource.Entity, D any](cfg consoleConfig) []restclient.Option[T, D] {
	options := make([]restclient.Option[T, D], 0)

	if cfg.httpClient != nil {
		options = append(options, restclient.WithHTTPClient[T, D](cfg.httpClient))
	}

	if cfg.logger != nil {
		options = append(options, restclient.WithLogger[T, D](cfg.logger))
	}

	return options
}

func storeOptions[T resource.Entity, D any](name string, cfg consoleConfig) []syncstore.Option[T, D] {
	options := []syncstore.Option[T, D]{syncstore.WithName[T, D](name)}

	if cfg.logger != nil {
		options = append(options, syncstore.WithLogger[T, D](cfg.logger))
	}

	if cfg.contextualLogger != nil {
		options = append(options, syncstore.WithContextualLogger[T, D](cfg.contextualLogger))
	}

	if cfg.metricsCollector != nil {
		options = append(options, syncstore.WithMetrics[T, D](cfg.metricsCollector))
	}

	return options
}
