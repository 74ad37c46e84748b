package browser

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestBaseDomain(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=1": "youtube.com",
		"https://music.example.co.uk/a":     "example.co.uk",
		"http://example.com":                "example.com",
	}
	for in, want := range tests {
		got, err := BaseDomain(in)
		if err != nil {
			t.Fatalf("BaseDomain(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("BaseDomain(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := BaseDomain("not a url"); err == nil {
		t.Fatalf("expected error for URL without host")
	}
}

func TestWriteNetscape(t *testing.T) {
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cookies := []*http.Cookie{
		{Name: "SID", Value: "abc", Domain: ".youtube.com", Path: "/", Secure: true, Expires: expires},
		{Name: "tmp", Value: "1"},
	}

	var buf bytes.Buffer
	if err := writeNetscape(&buf, cookies, "youtube.com"); err != nil {
		t.Fatalf("writeNetscape: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "# Netscape HTTP Cookie File") {
		t.Fatalf("missing header: %q", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	first := strings.Split(lines[len(lines)-2], "\t")
	second := strings.Split(lines[len(lines)-1], "\t")

	if len(first) != 7 || first[0] != ".youtube.com" || first[1] != "TRUE" || first[3] != "TRUE" || first[5] != "SID" {
		t.Fatalf("unexpected first line %q", first)
	}
	if first[4] != "1893456000" {
		t.Fatalf("unexpected expiry %q", first[4])
	}
	if second[0] != "youtube.com" || second[1] != "FALSE" || second[2] != "/" || second[4] != "0" {
		t.Fatalf("unexpected session cookie line %q", second)
	}
}
