package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSnapshotName validates a user-supplied name for a saved snapshot.
// It rejects names that could break listings or be used for injection.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "snapshot name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "snapshot name too long (max 128 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "snapshot name contains invalid control characters")
		}
	}

	return nil
}

// scenarioNameRegex matches catalog scenario names: lowercase snake_case.
var scenarioNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateScenarioName validates a scenario name before catalog lookup.
// Names are lowercase snake_case identifiers like "dining_philosophers".
func ValidateScenarioName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "scenario name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidName, "scenario name too long (max 64 characters)")
	}

	if !scenarioNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid scenario name: %q", name)
	}

	return nil
}

// ValidateResourceID validates a resource identifier from external input.
// Resource ids are opaque, so the rules only guard against unprintable or
// unreasonably long values:
//   - No empty ids
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateResourceID(rid string) error {
	if rid == "" {
		return New(ErrCodeInvalidInput, "resource id cannot be empty")
	}

	if len(rid) > 256 {
		return New(ErrCodeInvalidInput, "resource id too long (max 256 characters)")
	}

	for _, r := range rid {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "resource id contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "resource id cannot contain whitespace")
		}
	}

	return nil
}

// renderFormats are the output formats the render layer understands.
var renderFormats = map[string]bool{
	"dot":  true,
	"svg":  true,
	"png":  true,
	"json": true,
}

// ValidateRenderFormat validates an output format name.
// Accepted formats: dot, svg, png, json.
func ValidateRenderFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	if !renderFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format: %q (want dot, svg, png, or json)", format)
	}

	return nil
}

// ValidateGraphKind validates a graph kind selector from external input.
// Accepted kinds: rag, wfg.
func ValidateGraphKind(kind string) error {
	switch strings.ToLower(kind) {
	case "rag", "wfg":
		return nil
	case "":
		return New(ErrCodeInvalidInput, "graph kind cannot be empty")
	default:
		return New(ErrCodeInvalidInput, "unsupported graph kind: %q (want rag or wfg)", kind)
	}
}
