// Package browser exports local browser cookies for use by yt-dlp.
package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"mdload/internal/domain/consts"
	"mdload/internal/utils/logging"

	"github.com/browserutils/kooky"
	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
	"golang.org/x/net/publicsuffix"
)

// BaseDomain returns the registrable domain for an inputted URL.
func BaseDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}
	return publicsuffix.EffectiveTLDPlusOne(host)
}

// ExportCookies reads cookies for rawURL's domain from every local browser store
// and writes them to a private Netscape cookie file in dir.
//
// It returns an empty path when no cookies were found. The caller removes the file.
func ExportCookies(ctx context.Context, rawURL, dir string) (string, error) {
	domain, err := BaseDomain(rawURL)
	if err != nil {
		return "", fmt.Errorf("error extracting base domain in cookie grab: %w", err)
	}

	kookyCookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(domain))
	if err != nil && len(kookyCookies) == 0 {
		logging.D(2, "Failed reading cookies: %v", err)
		return "", nil
	}
	if len(kookyCookies) == 0 {
		logging.I("No browser cookies found for %s", domain)
		return "", nil
	}
	logging.I("Found %d browser cookies for %s", len(kookyCookies), domain)

	f, err := os.CreateTemp(dir, "mdload-cookies-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create cookie file: %w", err)
	}
	path := f.Name()

	if err := f.Chmod(consts.PermsCookieFile); err != nil {
		logging.D(1, "Could not restrict cookie file permissions: %v", err)
	}

	writeErr := writeNetscape(f, convertToHTTPCookies(kookyCookies), domain)
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		if err := os.Remove(path); err != nil {
			logging.E("failed to remove cookie file %q: %v", path, err)
		}
		if writeErr != nil {
			return "", writeErr
		}
		return "", closeErr
	}
	return path, nil
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, 0, len(kookyCookies))
	for _, c := range kookyCookies {
		if c == nil {
			continue
		}
		httpCookies = append(httpCookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return httpCookies
}

// writeNetscape writes cookies in the Netscape cookies.txt format yt-dlp reads.
func writeNetscape(w io.Writer, cookies []*http.Cookie, fallbackDomain string) error {
	if _, err := io.WriteString(w, "# Netscape HTTP Cookie File\n# https://curl.haxx.se/rfc/cookie_spec.html\n# This is a generated file! Do not edit.\n\n"); err != nil {
		return err
	}

	for _, cookie := range cookies {
		domain := cookie.Domain
		if domain == "" {
			domain = fallbackDomain
		}

		includeSubdomains := "FALSE"
		if strings.HasPrefix(domain, ".") {
			includeSubdomains = "TRUE"
		}

		secure := "FALSE"
		if cookie.Secure {
			secure = "TRUE"
		}

		path := cookie.Path
		if path == "" {
			path = "/"
		}

		// Session cookies carry a zero expiry
		var expires int64
		if !cookie.Expires.IsZero() {
			expires = cookie.Expires.Unix()
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, includeSubdomains, path, secure, expires, cookie.Name, cookie.Value); err != nil {
			return err
		}
	}
	return nil
}
