package picker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimtrunov/PickFlick/internal/httpclient"
	"github.com/vadimtrunov/PickFlick/internal/metadata/tmdb"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type call struct {
	method string
	media  string
	page   int
	id     int
}

// fakeSource is an in-memory Source that records every call.
type fakeSource struct {
	totalPages int
	results    []tmdb.Summary
	details    func(id int) *tmdb.Details
	failOn     int // 1-based call index that returns an error; 0 never fails
	calls      []call
}

var errFake = errors.New("fake upstream failure")

func (f *fakeSource) Discover(_ context.Context, media string, page int) (*tmdb.DiscoverPage, error) {
	f.calls = append(f.calls, call{method: "discover", media: media, page: page})
	if f.failOn == len(f.calls) {
		return nil, errFake
	}
	if page == 0 {
		return &tmdb.DiscoverPage{Page: 1, TotalPages: f.totalPages, Results: f.results}, nil
	}
	return &tmdb.DiscoverPage{Page: page, TotalPages: f.totalPages, Results: f.results}, nil
}

func (f *fakeSource) Details(_ context.Context, media string, id int) (*tmdb.Details, error) {
	f.calls = append(f.calls, call{method: "details", media: media, id: id})
	if f.failOn == len(f.calls) {
		return nil, errFake
	}
	if f.details != nil {
		return f.details(id), nil
	}
	return &tmdb.Details{ID: id, Title: "Some Movie"}, nil
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestPicker(src Source, seed uint64) *Picker {
	return New(src, WithRand(seeded(seed)), WithLogger(discardLogger))
}

func TestPick_Movie(t *testing.T) {
	src := &fakeSource{
		totalPages: 10,
		results:    []tmdb.Summary{{ID: 550}},
		details: func(id int) *tmdb.Details {
			return &tmdb.Details{
				ID:          id,
				Title:       "Fight Club",
				Overview:    "An insomniac office worker...",
				ReleaseDate: "1999-10-15",
				PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			}
		},
	}

	title, err := newTestPicker(src, 1).Pick(context.Background(), Movie)
	require.NoError(t, err)
	require.NotNil(t, title)

	assert.Equal(t, 550, title.ID)
	assert.Equal(t, Movie, title.Category)
	assert.Equal(t, "Movie", title.Kind)
	assert.Equal(t, "Fight Club", title.Title)
	assert.Equal(t, "1999-10-15", title.ReleaseDate)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", title.PosterURL)

	require.Len(t, src.calls, 3)
	assert.Equal(t, call{method: "discover", media: "movie", page: 0}, src.calls[0])
	assert.Equal(t, "discover", src.calls[1].method)
	assert.Equal(t, call{method: "details", media: "movie", id: 550}, src.calls[2])
}

func TestPick_RequestCountBounds(t *testing.T) {
	for _, cat := range []Category{Movie, TV} {
		for seed := range uint64(50) {
			src := &fakeSource{totalPages: int(seed * 37), results: []tmdb.Summary{{ID: 1}, {ID: 2}}}
			if seed%3 == 0 {
				src.results = nil
			}

			_, err := newTestPicker(src, seed).Pick(context.Background(), cat)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(src.calls), 2)
			assert.LessOrEqual(t, len(src.calls), 3)
			for _, c := range src.calls {
				assert.Equal(t, string(cat), c.media, "resolved category must stay fixed")
			}
		}
	}
}

func TestPick_PageWithinBounds(t *testing.T) {
	tests := []struct {
		name       string
		totalPages int
		maxPage    int
	}{
		{"zero pages", 0, 1},
		{"negative pages", -4, 1},
		{"one page", 1, 1},
		{"few pages", 5, 5},
		{"exactly cap", 1000, 1000},
		{"above cap", 48213, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := range uint64(200) {
				src := &fakeSource{totalPages: tt.totalPages, results: []tmdb.Summary{{ID: 1}}}
				_, err := newTestPicker(src, seed).Pick(context.Background(), TV)
				require.NoError(t, err)

				page := src.calls[1].page
				assert.GreaterOrEqual(t, page, 1)
				assert.LessOrEqual(t, page, tt.maxPage)
			}
		})
	}
}

func TestPick_EmptyResultsIsAbsent(t *testing.T) {
	src := &fakeSource{totalPages: 900, results: []tmdb.Summary{}}

	title, err := newTestPicker(src, 3).Pick(context.Background(), Movie)
	require.NoError(t, err)
	assert.Nil(t, title)

	require.Len(t, src.calls, 2)
	for _, c := range src.calls {
		assert.NotEqual(t, "details", c.method, "no detail fetch expected for an empty page")
	}
}

func TestPick_RandomResolvesToBoth(t *testing.T) {
	p := newTestPicker(&fakeSource{}, 42)
	counts := map[Category]int{}

	const n = 4000
	for range n {
		src := &fakeSource{totalPages: 1, results: []tmdb.Summary{{ID: 1}}}
		p.source = src

		title, err := p.Pick(context.Background(), Random)
		require.NoError(t, err)
		require.NotNil(t, title)
		counts[title.Category]++
		assert.Equal(t, string(title.Category), src.calls[0].media)
	}

	assert.Len(t, counts, 2)
	assert.InDelta(t, n/2, counts[Movie], n*0.05)
	assert.InDelta(t, n/2, counts[TV], n*0.05)
}

func TestPick_TitleFallsBackToName(t *testing.T) {
	src := &fakeSource{
		totalPages: 1,
		results:    []tmdb.Summary{{ID: 1396}},
		details: func(id int) *tmdb.Details {
			return &tmdb.Details{ID: id, Name: "Breaking Bad", FirstAirDate: "2008-01-20"}
		},
	}

	title, err := newTestPicker(src, 1).Pick(context.Background(), TV)
	require.NoError(t, err)
	require.NotNil(t, title)

	assert.Equal(t, "Breaking Bad", title.Title)
	assert.Equal(t, "2008-01-20", title.ReleaseDate)
	assert.Equal(t, "TV Series", title.Kind)
	assert.Empty(t, title.PosterURL)
}

func TestPick_UnknownCategoryRejected(t *testing.T) {
	src := &fakeSource{}

	_, err := newTestPicker(src, 1).Pick(context.Background(), Category("anime"))
	require.ErrorIs(t, err, ErrUnknownCategory)
	assert.Empty(t, src.calls)
}

func TestPick_FailureAbortsAtEveryStep(t *testing.T) {
	for failOn := 1; failOn <= 3; failOn++ {
		src := &fakeSource{totalPages: 3, results: []tmdb.Summary{{ID: 7}}, failOn: failOn}

		title, err := newTestPicker(src, 9).Pick(context.Background(), Movie)
		require.ErrorIs(t, err, errFake, "failure on call %d", failOn)
		assert.Nil(t, title)
		assert.Len(t, src.calls, failOn, "no calls expected after the failing one")
	}
}

func TestPick_DetailsIDFallsBackToSummary(t *testing.T) {
	src := &fakeSource{
		totalPages: 1,
		results:    []tmdb.Summary{{ID: 77}},
		details:    func(int) *tmdb.Details { return &tmdb.Details{Title: "No ID"} },
	}

	title, err := newTestPicker(src, 1).Pick(context.Background(), Movie)
	require.NoError(t, err)
	assert.Equal(t, 77, title.ID)
}

func TestPick_PosterSizeOption(t *testing.T) {
	src := &fakeSource{
		totalPages: 1,
		results:    []tmdb.Summary{{ID: 1}},
		details:    func(id int) *tmdb.Details { return &tmdb.Details{ID: id, PosterPath: "/abc.jpg"} },
	}

	p := New(src, WithRand(seeded(1)), WithLogger(discardLogger), WithPosterSize("original"))
	title, err := p.Pick(context.Background(), Movie)
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", title.PosterURL)
}

func TestClampPages(t *testing.T) {
	assert.Equal(t, 1, ClampPages(-1))
	assert.Equal(t, 1, ClampPages(0))
	assert.Equal(t, 42, ClampPages(42))
	assert.Equal(t, MaxPages, ClampPages(MaxPages))
	assert.Equal(t, MaxPages, ClampPages(MaxPages+1))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, " ", firstNonEmpty(" ", "b"), "whitespace is a value, not absence")
	assert.Empty(t, firstNonEmpty("", ""))
	assert.Empty(t, firstNonEmpty())
}

// TestPick_AgainstHTTP drives the picker through the real TMDb client and
// fails each of the three requests in turn.
func TestPick_AgainstHTTP(t *testing.T) {
	for failOn := int32(0); failOn <= 3; failOn++ {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := calls.Add(1)
			if n == failOn {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			switch {
			case strings.HasPrefix(r.URL.Path, "/discover/movie"):
				json.NewEncoder(w).Encode(map[string]any{
					"page":        1,
					"total_pages": 2,
					"results":     []map[string]any{{"id": 603}},
				})
			case r.URL.Path == "/movie/603":
				json.NewEncoder(w).Encode(map[string]any{
					"id":           603,
					"title":        "The Matrix",
					"release_date": "1999-03-30",
					"poster_path":  "/abc.jpg",
				})
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		}))

		client := tmdb.New(tmdb.Config{BaseURL: server.URL, Token: "tok"}, discardLogger)
		title, err := newTestPicker(client, 5).Pick(context.Background(), Movie)

		if failOn == 0 {
			require.NoError(t, err)
			require.NotNil(t, title)
			assert.Equal(t, "The Matrix", title.Title)
			assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", title.PosterURL)
			assert.EqualValues(t, 3, calls.Load())
		} else {
			var statusErr *httpclient.StatusError
			require.ErrorAs(t, err, &statusErr, "failure on request %d", failOn)
			assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
			assert.Nil(t, title)
			assert.Equal(t, failOn, calls.Load())
		}
		server.Close()
	}
}
