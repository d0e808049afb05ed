// Package validation provides input validation utilities for voxd's API
// handlers and configuration loading.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for API request payloads; the programmatic Validator suits
// cross-field checks in configuration.
//
// # Struct Tag Validation
//
//	type settingsPatch struct {
//	    Preset string `json:"preset" validate:"required,oneof=cleanup formal bullets email"`
//	    Model  string `json:"model" validate:"required,min=2"`
//	}
//	err := validation.Validate(patch)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("hotkey", cfg.Hotkey)
//	v.OneOf("mode", cfg.Mode, []string{"disabled", "clipboard", "auto_paste"})
//	err := v.Validate()
package validation
