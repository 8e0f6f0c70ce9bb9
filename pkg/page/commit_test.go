package page_test

import (
	"testing"

	"github.com/goliatone/go-trendminer/pkg/page"
)

func TestShortCommit(t *testing.T) {
	cases := []struct {
		name string
		tag  string
		want string
	}{
		{name: "empty", tag: "", want: ""},
		{name: "whitespace", tag: "   ", want: ""},
		{name: "short tag renders whole", tag: "abc12", want: "abc12"},
		{name: "exactly eight", tag: "abcdef12", want: "abcdef12"},
		{name: "long tag truncated", tag: "abcdef1234567890", want: "abcdef12"},
		{name: "surrounding whitespace trimmed before truncation", tag: "  abcdef1234\n", want: "abcdef12"},
		{name: "multibyte stays valid", tag: "ääääääääää", want: "ääääääää"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := page.ShortCommit(tc.tag); got != tc.want {
				t.Fatalf("ShortCommit(%q) = %q, want %q", tc.tag, got, tc.want)
			}
		})
	}
}

func TestCommitLink(t *testing.T) {
	base := "https://example.com/repo/commit/"

	if got := page.CommitLink(base, ""); got != "" {
		t.Fatalf("expected empty link for empty tag, got %q", got)
	}
	if got := page.CommitLink(base, "abcdef1234567890"); got != base+"abcdef12" {
		t.Fatalf("unexpected link: %q", got)
	}
	if got := page.CommitLink(base, "a/b c"); got != base+"a%2Fb%20c" {
		t.Fatalf("expected path-escaped tag, got %q", got)
	}
}

func TestRenderContextAuthenticated(t *testing.T) {
	if (page.RenderContext{}).Authenticated() {
		t.Fatalf("nil user must be anonymous")
	}
	if (page.RenderContext{User: &page.User{Username: "  "}}).Authenticated() {
		t.Fatalf("blank username must be anonymous")
	}
	rc := page.RenderContext{User: &page.User{Username: " alice "}}
	if !rc.Authenticated() || rc.Username() != "alice" {
		t.Fatalf("expected alice to be authenticated, got %q", rc.Username())
	}
}

func TestSiteWithDefaults(t *testing.T) {
	site := page.Site{Brand: "Custom"}.WithDefaults()
	if site.Brand != "Custom" {
		t.Fatalf("brand overwritten: %q", site.Brand)
	}
	if site.CommitURL != page.DefaultCommitURLPrefix {
		t.Fatalf("commit url not defaulted: %q", site.CommitURL)
	}
	if site.LoginURL == "" || site.LogoutURL == "" || site.HomeURL == "" {
		t.Fatalf("links not defaulted: %+v", site)
	}
}
