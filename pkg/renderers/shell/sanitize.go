package shell

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	blockPolicyOnce sync.Once
	blockPolicy     *bluemonday.Policy
)

// blockSanitizer returns the shared policy for untrusted content and footer
// blocks: bluemonday UGC plus the table markup the sortable tables rely on
// and the upload form controls of the analyse fragment.
func blockSanitizer() *bluemonday.Policy {
	blockPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("data-sort", "data-sorter").OnElements("th", "td")
		policy.AllowElements("form", "fieldset", "legend", "label", "input", "button")
		policy.AllowAttrs("action", "method", "enctype").OnElements("form")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("type").OnElements("button", "input")
		policy.AllowAttrs("name").OnElements("input")
		policy.AllowAttrs("id").OnElements("label", "input")
		blockPolicy = policy
	})
	return blockPolicy
}
