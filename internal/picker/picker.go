// Package picker selects a random title from TMDb's popularity-sorted
// discover listings and normalizes its details into a Title.
package picker

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/vadimtrunov/PickFlick/internal/metadata/tmdb"
)

const (
	// MaxPages is the deepest discover page TMDb will serve.
	MaxPages = 1000
	// DefaultPosterSize is the TMDb image size segment used for poster URLs.
	DefaultPosterSize = "w500"
)

// Source is the subset of the TMDb API the picker needs.
type Source interface {
	Discover(ctx context.Context, mediaType string, page int) (*tmdb.DiscoverPage, error)
	Details(ctx context.Context, mediaType string, id int) (*tmdb.Details, error)
}

// Picker picks random titles. It is safe for concurrent use.
type Picker struct {
	source     Source
	posterSize string
	logger     *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Picker.
type Option func(*Picker)

// WithRand sets the random source, e.g. a seeded one in tests.
func WithRand(rng *rand.Rand) Option {
	return func(p *Picker) {
		p.rng = rng
	}
}

// WithPosterSize sets the image size segment for poster URLs.
func WithPosterSize(size string) Option {
	return func(p *Picker) {
		if size != "" {
			p.posterSize = size
		}
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Picker) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Picker over source.
func New(source Source, opts ...Option) *Picker {
	p := &Picker{
		source:     source,
		posterSize: DefaultPosterSize,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) // #nosec G404
	}
	p.logger = p.logger.With(slog.String("component", "picker"))
	return p
}

// Pick returns a random title of the given category. A nil Title with a nil
// error means the sampled discover page had no results. Any failed request
// aborts the pick and is returned as is, wrapped with the failing step.
func (p *Picker) Pick(ctx context.Context, category Category) (*Title, error) {
	resolved := p.resolve(category)
	if resolved != Movie && resolved != TV {
		return nil, fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}
	media := string(resolved)

	first, err := p.source.Discover(ctx, media, 0)
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}
	total := ClampPages(first.TotalPages)

	page := 1 + p.intN(total)
	listing, err := p.source.Discover(ctx, media, page)
	if err != nil {
		return nil, fmt.Errorf("list page %d: %w", page, err)
	}

	p.logger.Debug("sampled discover page",
		slog.String("category", media),
		slog.Int("page", page),
		slog.Int("total_pages", total),
		slog.Int("results", len(listing.Results)),
	)

	if len(listing.Results) == 0 {
		return nil, nil
	}

	choice := listing.Results[p.intN(len(listing.Results))]
	details, err := p.source.Details(ctx, media, choice.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch details: %w", err)
	}

	return normalize(resolved, choice, details, p.posterSize), nil
}

// ClampPages bounds a reported page count to [1, MaxPages].
func ClampPages(total int) int {
	return max(1, min(total, MaxPages))
}

func (p *Picker) resolve(c Category) Category {
	p.mu.Lock()
	defer p.mu.Unlock()
	return c.Resolve(p.rng)
}

func (p *Picker) intN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}
