// Package resolver decides the final outbound URL for a masked link, taking
// per-country overrides and the worldwide fallback into account.
package resolver

import (
	"context"
	"strings"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// Resolver picks a result's destination URL for a visitor.
type Resolver struct {
	links  *repository.LinkRepository
	logger logger.Logger
}

// New creates a Resolver.
func New(links *repository.LinkRepository, log logger.Logger) *Resolver {
	return &Resolver{
		links:  links,
		logger: log,
	}
}

// Resolve returns the destination URL for a result and visitor country:
// the country override if one exists, else the worldwide fallback, else the
// result's canonical link. The worldwide sentinel country skips the country
// step. Any store failure falls back to the canonical link so a redirect
// never fails on a lookup error.
func (r *Resolver) Resolve(ctx context.Context, result *domain.WebResult, country string) string {
	if country != "" && !strings.EqualFold(country, domain.CountryWorldwide) {
		link, err := r.links.GetCountryLink(ctx, result.ID, country)
		switch {
		case err == nil:
			return NormalizeURL(link.URL)
		case !repository.IsNotFound(err):
			r.logger.Warn("Country link lookup failed, using canonical link",
				logger.String("result_id", result.ID),
				logger.String("country", country),
				logger.Error(err),
			)
			return NormalizeURL(result.Link)
		}
	}

	link, err := r.links.GetWorldwideLink(ctx, result.ID)
	switch {
	case err == nil:
		return NormalizeURL(link.URL)
	case !repository.IsNotFound(err):
		r.logger.Warn("Worldwide link lookup failed, using canonical link",
			logger.String("result_id", result.ID),
			logger.Error(err),
		)
	}

	return NormalizeURL(result.Link)
}

// NormalizeURL prepends https:// to URLs that carry no scheme.
func NormalizeURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}
