package extract

import (
	"math/rand/v2"
	"time"

	"github.com/jd3600/sonar/internal/types"
)

type implExtractor struct {
	profile Profile
	rnd     *lockedRand
}

// Option configures an Extractor.
type Option func(*implExtractor)

// WithRand pins the source used for synthetic speech times.
func WithRand(r *rand.Rand) Option {
	return func(e *implExtractor) {
		e.rnd = &lockedRand{r: r}
	}
}

// New creates an Extractor for the built-in profile of kind.
func New(kind types.MediaKind, opts ...Option) (Extractor, error) {
	p, err := ProfileFor(kind)
	if err != nil {
		return nil, err
	}
	return NewWithProfile(p, opts...), nil
}

// NewWithProfile creates an Extractor for a custom profile.
func NewWithProfile(p Profile, opts ...Option) Extractor {
	seed := uint64(time.Now().UnixNano())
	e := &implExtractor{
		profile: p,
		rnd:     &lockedRand{r: rand.New(rand.NewPCG(seed, seed>>1))},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
