package page

import "strings"

// User identifies the authenticated visitor. Only the username is rendered.
type User struct {
	Username string `json:"username"`
}

// RenderContext carries the request-scoped values the shell substitutes into
// its chrome. A RenderContext is treated as immutable for the duration of a
// render call.
type RenderContext struct {
	// Title is placed in the document <title>. Empty titles render as "".
	Title string `json:"title"`
	// User is nil for anonymous visitors.
	User *User `json:"user,omitempty"`
	// CommitTag is the revision identifier shown in the footer. Only the first
	// eight characters are displayed and linked.
	CommitTag string `json:"commitTag,omitempty"`
}

// Username returns the trimmed username or "" for anonymous visitors.
func (c RenderContext) Username() string {
	if c.User == nil {
		return ""
	}
	return strings.TrimSpace(c.User.Username)
}

// Authenticated reports whether the shell should render the Logout link.
func (c RenderContext) Authenticated() bool {
	return c.Username() != ""
}

// Blocks are caller supplied HTML fragments inserted verbatim at fixed
// positions of the page shell. Every block is optional.
type Blocks struct {
	// Head is appended inside <head> after the fixed stylesheets and favicons.
	Head string `json:"head,omitempty"`
	// Content fills the main container.
	Content string `json:"content,omitempty"`
	// Footer is appended after the fixed footer sentence and commit link.
	Footer string `json:"footer,omitempty"`
	// JavaScript is appended after the fixed script tags.
	JavaScript string `json:"javascript,omitempty"`
}

// Empty reports whether no block carries content.
func (b Blocks) Empty() bool {
	return b.Head == "" && b.Content == "" && b.Footer == "" && b.JavaScript == ""
}
