// Package prompt asks the interactive questions of `trendminer render
// --interactive` through survey.
package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-trendminer/pkg/page"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Driver abstracts the terminal so the question flow can be tested without
// one.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

type surveyDriver struct {
	opts []survey.AskOpt
}

// NewSurveyDriver returns a Driver backed by the process terminal.
func NewSurveyDriver(opts ...survey.AskOpt) Driver {
	return &surveyDriver{opts: opts}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	opts := append([]survey.AskOpt(nil), d.opts...)
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return cfg.Validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, d.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// RenderContext asks for the page title, the signed in user and the commit,
// offering rc's values as defaults.
func RenderContext(ctx context.Context, driver Driver, rc page.RenderContext) (page.RenderContext, error) {
	title, err := driver.Input(ctx, InputConfig{
		Message: "Page title:",
		Default: rc.Title,
	})
	if err != nil {
		return page.RenderContext{}, err
	}

	signedIn, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Render for a signed in user?",
		Default: rc.Authenticated(),
		Help:    "Signed in pages show a Logout link instead of Login.",
	})
	if err != nil {
		return page.RenderContext{}, err
	}

	var user *page.User
	if signedIn {
		username, err := driver.Input(ctx, InputConfig{
			Message:   "Username:",
			Default:   rc.Username(),
			Validator: requireNonBlank("username"),
		})
		if err != nil {
			return page.RenderContext{}, err
		}
		user = &page.User{Username: strings.TrimSpace(username)}
	}

	commit, err := driver.Input(ctx, InputConfig{
		Message: "Commit:",
		Default: rc.CommitTag,
		Help:    "Leave empty to omit the commit link from the footer.",
	})
	if err != nil {
		return page.RenderContext{}, err
	}

	return page.RenderContext{
		Title:     strings.TrimSpace(title),
		User:      user,
		CommitTag: strings.TrimSpace(commit),
	}, nil
}

func requireNonBlank(field string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}
