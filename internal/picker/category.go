package picker

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/vadimtrunov/PickFlick/internal/metadata/tmdb"
)

// Category is the kind of content to pick.
type Category string

const (
	Movie  Category = tmdb.MediaMovie
	TV     Category = tmdb.MediaTV
	Random Category = "random"
)

// maxSuggestDistance is the largest edit distance still offered as a "did you mean".
const maxSuggestDistance = 2

// ErrUnknownCategory is returned by ParseCategory for anything but movie, tv or random.
var ErrUnknownCategory = errors.New("unknown category")

var (
	allCategories      = []Category{Movie, TV, Random}
	concreteCategories = []Category{Movie, TV}
)

// ParseCategory normalizes s into a Category. An empty string means Random.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return Random, nil
	}
	for _, c := range allCategories {
		if norm == string(c) {
			return c, nil
		}
	}

	if hint := suggest(norm); hint != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownCategory, s, hint)
	}
	return "", fmt.Errorf("%w %q (want movie, tv or random)", ErrUnknownCategory, s)
}

func suggest(s string) Category {
	best, bestDist := Category(""), maxSuggestDistance+1
	for _, c := range allCategories {
		if d := edlib.LevenshteinDistance(s, string(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Resolve turns Random into Movie or TV with equal probability. Concrete
// categories are returned unchanged and consume no randomness.
func (c Category) Resolve(rng *rand.Rand) Category {
	if c != Random {
		return c
	}
	return concreteCategories[rng.IntN(len(concreteCategories))]
}

// Label is the human-readable kind shown in reports.
func (c Category) Label() string {
	switch c {
	case Movie:
		return "Movie"
	case TV:
		return "TV Series"
	}
	return string(c)
}

// Categories returns the accepted category names, for completions and help text.
func Categories() []string {
	out := make([]string, len(allCategories))
	for i, c := range allCategories {
		out[i] = string(c)
	}
	return out
}
