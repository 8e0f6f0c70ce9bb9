package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	maxSize     int64
	maxExpanded int64
	schema      *Schema
	validators  []Validator
	extra       []Validator
}

// WithMaxSize sets the upload size limit in bytes.
func WithMaxSize(limit int64) Option {
	return func(cfg *config) {
		cfg.maxSize = limit
	}
}

// WithMaxExpandedSize caps the total bytes extracted from an archive upload.
// It defaults to DefaultExpansionRatio times the upload size limit.
func WithMaxExpandedSize(limit int64) Option {
	return func(cfg *config) {
		cfg.maxExpanded = limit
	}
}

// WithSchema replaces the embedded TrendMiner schema.
func WithSchema(schema *Schema) Option {
	return func(cfg *config) {
		if schema != nil {
			cfg.schema = schema
		}
	}
}

// WithValidators replaces the built-in validator chain.
func WithValidators(validators ...Validator) Option {
	return func(cfg *config) {
		cfg.validators = append([]Validator(nil), validators...)
	}
}

// WithExtraValidators appends validators after the built-in chain.
func WithExtraValidators(validators ...Validator) Option {
	return func(cfg *config) {
		cfg.extra = append(cfg.extra, validators...)
	}
}

// Pipeline runs an ordered list of validators against uploads.
type Pipeline struct {
	validators  []Validator
	maxSize     int64
	maxExpanded int64
}

// NewPipeline builds the validator chain: extension, size, MIME type, archive
// integrity, archive contents, well-formedness, schema conformity.
func NewPipeline(options ...Option) *Pipeline {
	cfg := config{maxSize: DefaultMaxUploadSize}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.maxSize <= 0 {
		cfg.maxSize = DefaultMaxUploadSize
	}
	if cfg.maxExpanded <= 0 {
		cfg.maxExpanded = DefaultExpansionRatio * cfg.maxSize
	}

	validators := cfg.validators
	if validators == nil {
		validators = []Validator{
			ValidateExtension,
			ValidateSize(cfg.maxSize),
			ValidateMIMEType,
			ValidateZipIntegrity,
			ValidateZipContents,
			ValidateWellFormedness,
			ValidateSchema(cfg.schema),
		}
	}
	validators = append(validators, cfg.extra...)
	return &Pipeline{
		validators:  validators,
		maxSize:     cfg.maxSize,
		maxExpanded: cfg.maxExpanded,
	}
}

// MaxSize returns the upload size limit in bytes.
func (p *Pipeline) MaxSize() int64 {
	return p.maxSize
}

// Result is the outcome of validating one upload.
type Result struct {
	Valid  bool
	Errors []*ValidationError
	// MaxSize is the size limit the upload was checked against, in bytes.
	MaxSize int64
}

// Messages returns the trimmed, deduplicated user facing messages in
// validator order, or nil when there are none.
func (r Result) Messages() []string {
	var messages []string
	seen := make(map[string]struct{}, len(r.Errors))
	for _, err := range r.Errors {
		message := strings.TrimSpace(err.Message)
		if message == "" {
			continue
		}
		if _, ok := seen[message]; ok {
			continue
		}
		seen[message] = struct{}{}
		messages = append(messages, message)
	}
	return messages
}

// Has reports whether the result contains a failure with code.
func (r Result) Has(code Code) bool {
	for _, err := range r.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Validate runs every validator and collects their failures. The error return
// is reserved for context cancellation and validators failing for reasons
// other than rejecting the upload.
func (p *Pipeline) Validate(ctx context.Context, f File) (Result, error) {
	f.maxExpanded = p.maxExpanded
	result := Result{Valid: true, MaxSize: p.maxSize}
	for _, validate := range p.validators {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		err := validate(ctx, f)
		if err == nil {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return Result{}, fmt.Errorf("upload: validate %s: %w", f.Name, err)
		}
		result.Valid = false
		result.Errors = append(result.Errors, verr)
	}
	return result, nil
}
