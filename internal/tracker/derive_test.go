package tracker

import (
	"testing"

	"github.com/fastmoney/fastmoney/internal/domain"
)

func TestDeriveDevice(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      string
	}{
		{
			"desktop chrome",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			domain.DeviceDesktop,
		},
		{
			"desktop firefox linux",
			"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			domain.DeviceDesktop,
		},
		{
			"iphone",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			domain.DeviceMobile,
		},
		{
			"android phone",
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			domain.DeviceMobile,
		},
		{
			"ipad",
			"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			domain.DeviceTablet,
		},
		{
			"android tablet has no mobile marker",
			"Mozilla/5.0 (Linux; Android 13; SM-X710) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			domain.DeviceTablet,
		},
		{
			"kindle silk",
			"Mozilla/5.0 (Linux; U; en-us; KFAPWI Build/JDQ39) AppleWebKit/535.19 Silk/3.13 like Chrome/34.0 Safari/535.19",
			domain.DeviceTablet,
		},
		{
			"blackberry",
			"BlackBerry9700/5.0.0.862 Profile/MIDP-2.1 Configuration/CLDC-1.1",
			domain.DeviceMobile,
		},
		{"empty", "", domain.DeviceDesktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveDevice(tt.userAgent); got != tt.want {
				t.Errorf("DeriveDevice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveSource(t *testing.T) {
	tests := []struct {
		name      string
		utmSource string
		referrer  string
		want      string
	}{
		{"utm wins over referrer", "newsletter", "https://www.google.com/search?q=x", "newsletter"},
		{"google referrer", "", "https://www.google.com/search?q=make+money", "google"},
		{"google country domain", "", "https://www.google.co.uk/url?q=x", "google"},
		{"facebook referrer", "", "https://m.facebook.com/", "facebook"},
		{"twitter short link", "", "https://t.co/abc123", "twitter"},
		{"linkedin referrer", "", "https://www.linkedin.com/feed/", "linkedin"},
		{"instagram referrer", "", "https://l.instagram.com/", "instagram"},
		{"unknown referrer keeps hostname", "", "https://news.example.org/article", "news.example.org"},
		{"no referrer is direct", "", "", domain.SourceDirect},
		{"unparseable referrer is direct", "", "::not a url::", domain.SourceDirect},
		{"relative referrer is direct", "", "/internal/page", domain.SourceDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSource(tt.utmSource, tt.referrer); got != tt.want {
				t.Errorf("DeriveSource(%q, %q) = %q, want %q", tt.utmSource, tt.referrer, got, tt.want)
			}
		})
	}
}
