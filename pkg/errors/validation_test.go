package errors

import (
	"testing"
)

func TestValidateSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "before-recovery", false},
		{"valid with spaces", "dining philosophers run 3", false},
		{"valid unicode", "snapshot café", false},
		{"valid punctuation", "run #2 (staging)", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScenarioName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "circular_wait", false},
		{"valid with digits", "scenario_2", false},
		{"valid single word", "demo", false},

		{"empty", "", true},
		{"uppercase", "Dining_Philosophers", true},
		{"leading digit", "4_processes", true},
		{"leading underscore", "_hidden", true},
		{"dash", "circular-wait", true},
		{"path traversal", "../etc", true},
		{"space", "circular wait", true},
		{"too long", "a" + string(make([]byte, 100)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenarioName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScenarioName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateResourceID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "R1", false},
		{"valid with underscore", "FILE_9151", false},
		{"valid lowercase", "disk", false},
		{"valid punctuation", "db:primary", false},

		{"empty", "", true},
		{"space", "R 1", true},
		{"tab", "R\t1", true},
		{"null byte", "R\x001", true},
		{"control char", "R\x011", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResourceID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResourceID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRenderFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"dot", "dot", false},
		{"svg", "svg", false},
		{"png", "png", false},
		{"json", "json", false},
		{"uppercase accepted", "SVG", false},

		{"empty", "", true},
		{"pdf", "pdf", true},
		{"html", "html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRenderFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRenderFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGraphKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"rag", "rag", false},
		{"wfg", "wfg", false},
		{"uppercase accepted", "WFG", false},

		{"empty", "", true},
		{"unknown", "dag", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraphKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorCodes(t *testing.T) {
	if got := GetCode(ValidateSnapshotName("")); got != ErrCodeInvalidName {
		t.Errorf("snapshot name code = %v, want %v", got, ErrCodeInvalidName)
	}
	if got := GetCode(ValidateScenarioName("Nope")); got != ErrCodeInvalidName {
		t.Errorf("scenario name code = %v, want %v", got, ErrCodeInvalidName)
	}
	if got := GetCode(ValidateResourceID("")); got != ErrCodeInvalidInput {
		t.Errorf("resource id code = %v, want %v", got, ErrCodeInvalidInput)
	}
	if got := GetCode(ValidateRenderFormat("pdf")); got != ErrCodeInvalidFormat {
		t.Errorf("render format code = %v, want %v", got, ErrCodeInvalidFormat)
	}
}
