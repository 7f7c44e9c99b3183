package hint

import (
	"context"
	"errors"
	"time"

	"geoquiz/internal/geom"
	"geoquiz/internal/logger"
	"geoquiz/internal/metrics"
)

// Generator produces a remote hint for a region's English name.
type Generator interface {
	Generate(ctx context.Context, englishName, lang string) (Hint, error)
}

// Provider resolves the hint for a round: cache, then remote, then the
// fallback. It never fails.
type Provider struct {
	Remote  Generator // nil disables remote hints
	Cache   Cache     // nil disables caching
	Lang    string
	Timeout time.Duration
}

// Hint returns a hint for r.
func (p *Provider) Hint(ctx context.Context, r geom.Region) Hint {
	key := CacheKey(p.Lang, r.ID)
	if p.Cache != nil {
		if h, ok := p.Cache.Get(ctx, key); ok && !h.leaks() {
			metrics.HintCacheHitsTotal.Inc()
			h.Source = SourceCache
			return h
		}
	}
	h, err := p.remote(ctx, r)
	if err == nil {
		if p.Cache != nil {
			p.Cache.Set(ctx, key, h)
		}
		return h
	}
	if !errors.Is(err, ErrDisabled) {
		logger.L().Warn("hint_fallback", "region", r.ID, "reason", err)
	}
	metrics.HintFallbackTotal.Inc()
	return Fallback(r)
}

func (p *Provider) remote(ctx context.Context, r geom.Region) (Hint, error) {
	if p.Remote == nil {
		return Hint{}, ErrDisabled
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	name := r.EnglishName
	if name == "" {
		name = r.Name
	}
	h, err := p.Remote.Generate(ctx, name, p.Lang)
	if err != nil {
		return Hint{}, err
	}
	if h.leaks() {
		metrics.HintFilteredTotal.Inc()
		return Hint{}, ErrFiltered
	}
	h.Source = SourceRemote
	return h, nil
}
