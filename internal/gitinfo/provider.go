package gitinfo

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/diffpy/liga/internal/logger"
)

// gitExecutable is the source-control tool queried for version metadata.
const gitExecutable = "git"

// DefaultAttempts is the number of times the describe query is tried before
// the failure is surfaced to the caller.
const DefaultAttempts = 1

// Runner executes an external command in the given directory and returns its
// standard output. Diagnostic output is suppressed. Implementations exist so
// tests can count and fake subprocess invocations.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// execRunner spawns real subprocesses, capturing stdout and discarding stderr.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = io.Discard

	return cmd.Output()
}

// Provider computes version metadata on first request and serves the cached
// record afterwards. It is safe for concurrent use; concurrent first calls
// spawn at most one describe/log pair.
type Provider struct {
	mu       sync.Mutex
	cached   *Info
	dir      string
	runner   Runner
	attempts int
}

// Option configures a Provider.
type Option func(*Provider)

// WithDir sets the working directory for git queries. Defaults to the
// current directory.
func WithDir(dir string) Option {
	return func(p *Provider) {
		if dir != "" {
			p.dir = dir
		}
	}
}

// WithRunner replaces the subprocess runner. Intended for tests.
func WithRunner(r Runner) Option {
	return func(p *Provider) {
		if r != nil {
			p.runner = r
		}
	}
}

// WithAttempts bounds the number of describe query attempts.
func WithAttempts(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.attempts = n
		}
	}
}

// NewProvider returns a Provider with an empty cache.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		dir:      ".",
		runner:   execRunner{},
		attempts: DefaultAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Get returns the version metadata for the configured repository, querying
// git on the first call and the cache on every later one. The returned
// record never changes for the lifetime of the provider.
func (p *Provider) Get(ctx context.Context) (*Info, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return p.cached, nil
	}

	desc, err := p.describe(ctx)
	if err != nil {
		return nil, err
	}

	glog, err := p.runner.Run(ctx, p.dir, gitExecutable, "log", "-1", "--format=%H%n%ai%n%at%n%an")
	if err != nil {
		return nil, fmt.Errorf("query last commit: %w", err)
	}

	inf := &Info{Version: versionFromDescribe(desc)}

	if err = inf.fillFromLog(glog); err != nil {
		return nil, err
	}

	if err = inf.parseVersion(); err != nil {
		return nil, err
	}

	p.cached = inf

	return inf, nil
}

// describe runs the nearest-tag query, restricted to tags that start with
// "v" and a digit, retrying up to the configured bound before giving up.
func (p *Provider) describe(ctx context.Context) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= p.attempts; attempt++ {
		out, err := p.runner.Run(ctx, p.dir, gitExecutable, "describe", "--match=v[[:digit:]]*")
		if err == nil {
			return string(out), nil
		}

		lastErr = err

		logger.WarnKV(ctx, "Describe query failed", "attempt", attempt, "error", err)
	}

	return "", fmt.Errorf("%w after %d attempt(s): %v", ErrDescribeFailed, p.attempts, lastErr)
}

// Reset clears the cached record so the next Get queries git again.
// Intended for tests.
func (p *Provider) Reset() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
}

// defaultProvider is the process-wide provider behind the package-level
// accessors, querying the current directory.
//
//nolint:gochecknoglobals // The memoization contract is process-wide.
var defaultProvider = NewProvider()

// Get returns the process-wide memoized version metadata.
func Get(ctx context.Context) (*Info, error) {
	return defaultProvider.Get(ctx)
}

// Reset clears the process-wide cache. Intended for tests.
func Reset() {
	defaultProvider.Reset()
}
