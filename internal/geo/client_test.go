package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

const testTimeout = 2 * time.Second

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.9/json/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ip": "203.0.113.9", "country_code": "gb", "city": "London"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, testTimeout, nil, time.Hour, logger.NewNop())

	loc := client.Lookup(context.Background(), "203.0.113.9")
	if loc.IP != "203.0.113.9" {
		t.Errorf("Lookup() ip = %q, want 203.0.113.9", loc.IP)
	}
	// Country codes are normalized to upper case.
	if loc.Country != "GB" {
		t.Errorf("Lookup() country = %q, want GB", loc.Country)
	}
}

func TestLookup_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, testTimeout, nil, time.Hour, logger.NewNop())

	loc := client.Lookup(context.Background(), "203.0.113.9")
	if loc.Country != domain.CountryWorldwide {
		t.Errorf("Lookup() on upstream error country = %q, want %q", loc.Country, domain.CountryWorldwide)
	}
	if loc.IP != "203.0.113.9" {
		t.Errorf("Lookup() on upstream error ip = %q, want the requested ip", loc.IP)
	}
}

func TestLookup_UnreachableService(t *testing.T) {
	// A closed server simulates an unreachable upstream.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, testTimeout, nil, time.Hour, logger.NewNop())

	loc := client.Lookup(context.Background(), "203.0.113.9")
	if loc.Country != domain.CountryWorldwide {
		t.Errorf("Lookup() country = %q, want %q", loc.Country, domain.CountryWorldwide)
	}
}

func TestLookup_EmptyIP(t *testing.T) {
	client := NewClient("http://unused.invalid", testTimeout, nil, time.Hour, logger.NewNop())

	loc := client.Lookup(context.Background(), "")
	if loc.IP != domain.IPUnknown {
		t.Errorf("Lookup(\"\") ip = %q, want %q", loc.IP, domain.IPUnknown)
	}
	if loc.Country != domain.CountryWorldwide {
		t.Errorf("Lookup(\"\") country = %q, want %q", loc.Country, domain.CountryWorldwide)
	}
}

func TestLookup_MissingCountryFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ip": "198.51.100.7"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, testTimeout, nil, time.Hour, logger.NewNop())

	loc := client.Lookup(context.Background(), "198.51.100.7")
	if loc.Country != domain.CountryWorldwide {
		t.Errorf("Lookup() country = %q, want %q", loc.Country, domain.CountryWorldwide)
	}
}

func TestUnknown(t *testing.T) {
	loc := Unknown("203.0.113.9")
	if loc.IP != "203.0.113.9" || loc.Country != domain.CountryWorldwide {
		t.Errorf("Unknown() = %+v, want ip kept and worldwide country", loc)
	}

	loc = Unknown("")
	if loc.IP != domain.IPUnknown {
		t.Errorf("Unknown(\"\") ip = %q, want %q", loc.IP, domain.IPUnknown)
	}
}
