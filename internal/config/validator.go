package config

import (
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Field + ": " + err.Message
	}
	return "config validation failed: " + strings.Join(parts, "; ")
}

// Validator checks configuration values against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	file := ctx.CompileBytes(configSchemaCUE, cue.Filename("config.cue"))
	if err := file.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	schema := file.LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema has no #Config: %w", err)
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks the values set in cfg. Unset values are valid.
func (v *Validator) Validate(cfg *Config) error {
	data := v.ctx.Encode(setValues(cfg))
	err := v.schema.Unify(data).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		field := fieldPath(e.Path())
		if seen[field] {
			continue
		}
		seen[field] = true

		format, args := e.Msg()
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	if len(errs) == 0 {
		return ValidationErrors{{Field: "config", Message: err.Error()}}
	}
	return errs
}

// setValues returns only the keys cfg sets, in config file layout.
func setValues(cfg *Config) map[string]any {
	out := map[string]any{}

	defaults := map[string]any{}
	if cfg.Defaults.Group != "" {
		defaults["group"] = cfg.Defaults.Group
	}
	if cfg.Defaults.Template != "" {
		defaults["template"] = cfg.Defaults.Template
	}
	if len(defaults) > 0 {
		out["defaults"] = defaults
	}

	if cfg.Log.Timestamps != nil {
		out["log"] = map[string]any{"timestamps": *cfg.Log.Timestamps}
	}
	return out
}

// fieldPath drops definition selectors such as #Config from a CUE path.
func fieldPath(path []string) string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	if len(path) == 0 {
		return "config"
	}
	return strings.Join(path, ".")
}

var defaultValidator = sync.OnceValues(NewValidator)

// Validate checks cfg against the embedded schema.
func Validate(cfg *Config) error {
	v, err := defaultValidator()
	if err != nil {
		return err
	}
	return v.Validate(cfg)
}
