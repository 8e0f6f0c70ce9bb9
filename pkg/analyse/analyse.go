// Package analyse composes the upload page: the upload form, the feedback
// from the validation pipeline and the surrounding page shell.
package analyse

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-trendminer/pkg/page"
	"github.com/goliatone/go-trendminer/pkg/render"
	"github.com/goliatone/go-trendminer/pkg/renderers/shell"
	"github.com/goliatone/go-trendminer/pkg/upload"
)

// Title is the document title of the analyse page.
const Title = "Analyse Tweets"

// DefaultAction is the form target used when Form.Action is empty.
const DefaultAction = "/analyse/"

// FragmentRenderer renders named fragments from a template bundle.
type FragmentRenderer interface {
	RenderFragment(name string, data any) (string, error)
}

// Form describes the state of the upload form.
type Form struct {
	Action string
	// Submitted is false for the initial GET, when neither feedback block is shown.
	Submitted bool
	FileName  string
	Result    upload.Result
	// MaxUploadSize is shown as the limit hint, in bytes.
	MaxUploadSize int64
}

// NewForm returns the form state after validating fileName. The limit hint
// follows the size limit recorded on result.
func NewForm(result upload.Result, fileName string) Form {
	limit := result.MaxSize
	if limit <= 0 {
		limit = upload.DefaultMaxUploadSize
	}
	return Form{
		Submitted:     true,
		FileName:      fileName,
		Result:        result,
		MaxUploadSize: limit,
	}
}

func (f Form) viewData() map[string]any {
	action := f.Action
	if action == "" {
		action = DefaultAction
	}
	limit := f.MaxUploadSize
	if limit <= 0 {
		limit = upload.DefaultMaxUploadSize
	}

	var messages []any
	if f.Submitted {
		for _, message := range f.Result.Messages() {
			messages = append(messages, message)
		}
	}
	return map[string]any{
		"action":    action,
		"success":   f.Submitted && f.Result.Valid,
		"errors":    messages,
		"file_name": f.FileName,
		"limit_mb":  strconv.FormatFloat(float64(limit)/(1<<20), 'f', -1, 64),
	}
}

// Blocks renders the form into the content block of the page shell.
func Blocks(fragments FragmentRenderer, form Form) (page.Blocks, error) {
	if fragments == nil {
		return page.Blocks{}, fmt.Errorf("analyse: fragment renderer is nil")
	}
	content, err := fragments.RenderFragment(shell.AnalyseFragment, form.viewData())
	if err != nil {
		return page.Blocks{}, fmt.Errorf("analyse: %w", err)
	}
	return page.Blocks{Content: content}, nil
}

// Page returns the blocks for a validated upload using the default shell
// templates.
func Page(result upload.Result, fileName string) page.Blocks {
	blocks, err := Blocks(shell.Default(), NewForm(result, fileName))
	if err != nil {
		panic(err)
	}
	return blocks
}

// Render produces the complete analyse document for form.
func Render(ctx context.Context, renderer *shell.Renderer, rc page.RenderContext, form Form, options render.RenderOptions) ([]byte, error) {
	if renderer == nil {
		renderer = shell.Default()
	}
	if rc.Title == "" {
		rc.Title = Title
	}
	blocks, err := Blocks(renderer, form)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, rc, blocks, options)
}
