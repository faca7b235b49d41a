package tracker

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fastmoney/fastmoney/internal/domain"
)

var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobilePattern = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
)

// DeriveDevice classifies a user agent as Desktop, Mobile, or Tablet.
// Android without a mobile marker is a tablet.
func DeriveDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if tabletPattern.MatchString(userAgent) {
		return domain.DeviceTablet
	}
	if strings.Contains(ua, "android") && !strings.Contains(ua, "mobi") {
		return domain.DeviceTablet
	}
	if mobilePattern.MatchString(userAgent) {
		return domain.DeviceMobile
	}
	return domain.DeviceDesktop
}

// knownSources maps referrer hostname fragments to canonical source names.
var knownSources = []struct {
	fragment string
	source   string
}{
	{"google", "google"},
	{"facebook", "facebook"},
	{"twitter", "twitter"},
	{"t.co", "twitter"},
	{"linkedin", "linkedin"},
	{"instagram", "instagram"},
}

// DeriveSource determines the traffic source for a visit. An explicit
// utm_source wins; otherwise the referrer hostname is mapped to a known
// source name or used as-is; no referrer at all means direct traffic.
func DeriveSource(utmSource, referrer string) string {
	if utmSource != "" {
		return utmSource
	}
	if referrer == "" {
		return domain.SourceDirect
	}

	refURL, err := url.Parse(referrer)
	if err != nil || refURL.Hostname() == "" {
		return domain.SourceDirect
	}

	hostname := refURL.Hostname()
	for _, known := range knownSources {
		if strings.Contains(hostname, known.fragment) {
			return known.source
		}
	}

	return hostname
}
