package patterntree

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/cespare/xxhash/v2"

	"github.com/jlab-tracking/treesearch/pkg/errors"
)

// Params is a TOML-loadable generation request: the four build-time
// parameters the original design groups as TreeParam, plus a Name label
// used to tag CLI/HTTP output. Name is not part of CacheKey.
type Params struct {
	Name     string    `toml:"name"`
	MaxDepth uint32    `toml:"max_depth"`
	Width    float64   `toml:"width"`
	ZPos     []float64 `toml:"zpos"`
	MaxSlope float64   `toml:"max_slope"`
}

// LoadParams reads and validates a Params from a TOML config file.
func LoadParams(path string) (Params, error) {
	var p Params
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Params{}, errors.Wrap(errors.ErrCodeParam, err, "load params from %s", path)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks Params for the conditions the generator requires before
// it will attempt a build: at least two planes, a positive width, a
// strictly increasing (or decreasing) z-position sequence, and a
// non-negative max depth/slope.
func (p *Params) Validate() error {
	if len(p.ZPos) < 2 {
		return errors.New(errors.ErrCodeParam, "zpos must list at least 2 planes, got %d", len(p.ZPos))
	}
	if p.Width <= 0 {
		return errors.New(errors.ErrCodeParam, "width must be positive, got %v", p.Width)
	}
	if p.MaxSlope < 0 {
		return errors.New(errors.ErrCodeParam, "max_slope must be non-negative, got %v", p.MaxSlope)
	}
	if p.MaxDepth == 0 {
		return errors.New(errors.ErrCodeParam, "max_depth must be at least 1, got %d", p.MaxDepth)
	}
	increasing, decreasing := true, true
	for i := 1; i < len(p.ZPos); i++ {
		if p.ZPos[i] <= p.ZPos[i-1] {
			increasing = false
		}
		if p.ZPos[i] >= p.ZPos[i-1] {
			decreasing = false
		}
	}
	if !increasing && !decreasing {
		return errors.New(errors.ErrCodeParam, "zpos must be strictly monotonic")
	}
	return nil
}

// CacheKey returns a content hash of the normalized parameters, suitable
// for keying a generated tree in pkg/cache: two Params that normalize to
// the same zpos, width, max depth and max slope hash identically
// regardless of Name, matching the same xxhash-based content-hash idiom
// the generator's own dedup table uses internally.
func (p *Params) CacheKey() string {
	h := xxhash.New()
	fmt.Fprintf(h, "%d|%.17g|%.17g|", p.MaxDepth, p.Width, p.MaxSlope)
	for _, z := range p.normalizedZPos() {
		fmt.Fprintf(h, "%.17g,", z)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// normalizedZPos rescales ZPos to span exactly [0,1], the range the
// generator's geometric filters assume.
func (p *Params) normalizedZPos() []float64 {
	lo, hi := p.ZPos[0], p.ZPos[0]
	for _, z := range p.ZPos[1:] {
		if z < lo {
			lo = z
		}
		if z > hi {
			hi = z
		}
	}
	span := hi - lo
	out := make([]float64, len(p.ZPos))
	for i, z := range p.ZPos {
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (z - lo) / span
	}
	return out
}
