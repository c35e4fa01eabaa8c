package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/ghv/internal/cache"
	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/log"
)

// Defaults for Options fields left at zero.
const (
	DefaultMaxRepos     = 20
	DefaultPreviewLines = 4
)

// Client is the remote API the pipeline reads from.
type Client interface {
	FetchProfile(ctx context.Context, username string) (*github.Profile, error)
	FetchRepositories(ctx context.Context, reposURL string) ([]github.Repository, error)
	FetchReadme(ctx context.Context, owner, repo string) (string, bool)
}

// Stores are the two caches: profiles by lowercased username, repository
// lists by repos URL.
type Stores struct {
	Profiles *cache.Store[string, *github.Profile]
	Repos    *cache.Store[string, []github.Repository]
}

// NewStores creates both caches with the same TTL.
func NewStores(ttl time.Duration, opts ...cache.Option) Stores {
	return Stores{
		Profiles: cache.New[string, *github.Profile](ttl, opts...),
		Repos:    cache.New[string, []github.Repository](ttl, opts...),
	}
}

// Options tune a Pipeline.
type Options struct {
	// MaxRepos caps the cards shown after forks are dropped.
	MaxRepos int
	// PreviewLines is the README preview height.
	PreviewLines int
	// ReadmeConcurrency bounds parallel README fetches; 0 means unbounded.
	ReadmeConcurrency int
	// SkipReadmes settles right after the repository list is rendered.
	SkipReadmes bool
}

func (o Options) withDefaults() Options {
	if o.MaxRepos <= 0 {
		o.MaxRepos = DefaultMaxRepos
	}
	if o.PreviewLines <= 0 {
		o.PreviewLines = DefaultPreviewLines
	}
	return o
}

// Outcome is what a Search reached by the time it returned. README tasks
// may still be running when State is ReadmesStreaming; use Wait.
type Outcome struct {
	State State
	Err   error
}

// generation is the per-search bookkeeping.
type generation struct {
	id      uint64
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	repos   []github.Repository
	readmes map[CardID]Readme
}

// Pipeline runs searches against a client, two caches and one sink.
type Pipeline struct {
	client Client
	stores Stores
	sink   Sink
	opts   Options

	mu    sync.Mutex
	seq   uint64
	state State
	cur   *generation
}

// New creates a pipeline. Nil stores are created with the default TTL.
func New(client Client, stores Stores, sink Sink, opts Options) *Pipeline {
	if stores.Profiles == nil {
		stores.Profiles = cache.New[string, *github.Profile](cache.DefaultTTL)
	}
	if stores.Repos == nil {
		stores.Repos = cache.New[string, []github.Repository](cache.DefaultTTL)
	}
	return &Pipeline{
		client: client,
		stores: stores,
		sink:   sink,
		opts:   opts.withDefaults(),
	}
}

// State returns the state of the current search.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stores returns the caches the pipeline reads through.
func (p *Pipeline) Stores() Stores {
	return p.stores
}

// Search runs a search for input. The profile and repository steps run on
// the calling goroutine; README tasks continue in the background.
// Starting a search cancels the previous one.
func (p *Pipeline) Search(ctx context.Context, input string) Outcome {
	gen := p.begin(ctx)
	l := log.FromContext(ctx)

	username := strings.TrimSpace(input)
	if err := Validate(username); err != nil {
		return p.fail(gen, err, username)
	}

	if !p.emit(gen, Loading, func(s Sink) {
		s.Reset()
		s.ShowLoading(true)
	}) {
		return p.superseded(gen)
	}

	profile, err := p.resolveProfile(gen.ctx, username)
	if err != nil {
		l.Debug("profile lookup failed", "user", username, "error", err)
		return p.fail(gen, err, username)
	}

	if !p.emit(gen, ProfileReady, func(s Sink) {
		s.RenderProfile(*profile)
	}) {
		return p.superseded(gen)
	}

	repos, err := p.resolveRepos(gen.ctx, profile.ReposURL)
	if err != nil {
		l.Debug("repository list unavailable", "user", username, "error", err)
		if !p.emit(gen, ReposFailed, func(s Sink) {
			s.ShowLoading(false)
			s.RenderRepoHeader(0)
		}) {
			return p.superseded(gen)
		}
		p.settle(gen)
		return Outcome{State: ReposFailed, Err: err}
	}

	shown := Visible(repos, p.opts.MaxRepos)
	if !p.emit(gen, ReposReady, func(s Sink) {
		gen.repos = shown
		s.ShowLoading(false)
		s.RenderRepoHeader(len(repos))
		s.RenderRepoList(shown)
	}) {
		return p.superseded(gen)
	}

	if len(shown) == 0 || p.opts.SkipReadmes {
		p.settle(gen)
		return Outcome{State: Settled}
	}

	p.emit(gen, ReadmesStreaming, func(Sink) {})
	go p.stream(gen, shown)
	return Outcome{State: ReadmesStreaming}
}

// Wait blocks until the current search settles or ctx is done.
func (p *Pipeline) Wait(ctx context.Context) error {
	p.mu.Lock()
	gen := p.cur
	p.mu.Unlock()
	if gen == nil {
		return nil
	}
	select {
	case <-gen.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Expand opens the overlay for a card of the current search.
func (p *Pipeline) Expand(card CardID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return ErrNoReadme
	}
	readme, ok := p.cur.readmes[card]
	if !ok || !readme.Available {
		return ErrNoReadme
	}
	if !readme.Truncated {
		return ErrNotTruncated
	}
	repo := p.cur.repos[card]
	p.sink.OpenOverlay(Overlay{
		Repo: repo.FullName(),
		URL:  repo.HTMLURL,
		Text: readme.Full,
	})
	return nil
}

// CloseOverlay dismisses the overlay.
func (p *Pipeline) CloseOverlay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink.CloseOverlay()
}

// Visible drops forks and keeps at most limit of the rest, in order.
func Visible(repos []github.Repository, limit int) []github.Repository {
	shown := make([]github.Repository, 0, min(len(repos), limit))
	for _, r := range repos {
		if r.Fork {
			continue
		}
		if len(shown) == limit {
			break
		}
		shown = append(shown, r)
	}
	return shown
}

// begin starts a new generation and cancels the previous one.
func (p *Pipeline) begin(ctx context.Context) *generation {
	gctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur != nil {
		p.cur.cancel()
	}
	p.seq++
	gen := &generation{
		id:      p.seq,
		ctx:     gctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		readmes: make(map[CardID]Readme),
	}
	p.cur = gen
	p.state = Validating
	return gen
}

// emit runs fn against the sink and moves to next, but only while gen is
// still the current generation. It reports whether fn ran.
func (p *Pipeline) emit(gen *generation, next State, fn func(Sink)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur != gen {
		return false
	}
	p.state = next
	fn(p.sink)
	return true
}

func (p *Pipeline) fail(gen *generation, err error, username string) Outcome {
	msg := Message(err, username)
	var verr *ValidationError
	validation := errors.As(err, &verr)
	ok := p.emit(gen, Errored, func(s Sink) {
		if !validation {
			s.ShowLoading(false)
		}
		s.ShowError(msg)
	})
	p.finish(gen)
	if !ok {
		return Outcome{State: Errored, Err: ErrSuperseded}
	}
	return Outcome{State: Errored, Err: err}
}

func (p *Pipeline) superseded(gen *generation) Outcome {
	p.finish(gen)
	return Outcome{State: p.State(), Err: ErrSuperseded}
}

// settle marks gen as done and, if still current, Settled.
func (p *Pipeline) settle(gen *generation) {
	p.emit(gen, Settled, func(Sink) {})
	p.finish(gen)
}

func (p *Pipeline) finish(gen *generation) {
	gen.cancel()
	close(gen.done)
}

func (p *Pipeline) resolveProfile(ctx context.Context, username string) (*github.Profile, error) {
	l := log.FromContext(ctx)
	key := strings.ToLower(username)
	if profile, ok := p.stores.Profiles.Get(key); ok {
		l.Debug("profile resolved", "user", username, "source", "cache")
		return profile, nil
	}

	profile, err := p.client.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile.Message != "" {
		return nil, &RemoteMessageError{Message: profile.Message}
	}
	p.stores.Profiles.Put(key, profile)
	l.Debug("profile resolved", "user", username, "source", "network")
	return profile, nil
}

func (p *Pipeline) resolveRepos(ctx context.Context, reposURL string) ([]github.Repository, error) {
	l := log.FromContext(ctx)
	if repos, ok := p.stores.Repos.Get(reposURL); ok {
		l.Debug("repositories resolved", "url", reposURL, "source", "cache", "count", len(repos))
		return repos, nil
	}

	repos, err := p.client.FetchRepositories(ctx, reposURL)
	if err != nil {
		return nil, err
	}
	p.stores.Repos.Put(reposURL, repos)
	l.Debug("repositories resolved", "url", reposURL, "source", "network", "count", len(repos))
	return repos, nil
}

// stream fetches one README per card and settles gen when all are done.
func (p *Pipeline) stream(gen *generation, repos []github.Repository) {
	defer p.settle(gen)

	var g errgroup.Group
	if p.opts.ReadmeConcurrency > 0 {
		g.SetLimit(p.opts.ReadmeConcurrency)
	}
	for i, repo := range repos {
		card := CardID(i)
		g.Go(func() error {
			if gen.ctx.Err() != nil {
				return nil
			}
			text, ok := p.client.FetchReadme(gen.ctx, repo.Owner, repo.Name)
			readme := NewReadme(text, ok, p.opts.PreviewLines)
			p.emit(gen, ReadmesStreaming, func(s Sink) {
				gen.readmes[card] = readme
				s.AttachReadme(card, readme)
			})
			return nil
		})
	}
	_ = g.Wait()
}
