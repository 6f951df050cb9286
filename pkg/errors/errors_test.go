package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidInput, "curvature or radius can't be 0 (c%d)", 2)
	if got, want := err.Error(), "INVALID_INPUT: curvature or radius can't be 0 (c2)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("unexpected EOF")
	wrapped := Wrap(ErrCodeInvalidSchemeData, cause, "decode %s", "schemes.json")
	if got, want := wrapped.Error(), "INVALID_SCHEME_DATA: decode schemes.json: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) || errors.Unwrap(wrapped) != cause {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", New(ErrCodeSchemeNotFound, "Plaid"), ErrCodeSchemeNotFound},
		{"outermost wins", Wrap(ErrCodeArithmeticDegenerate, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeArithmeticDegenerate},
		{"behind fmt.Errorf", fmt.Errorf("generate: %w", New(ErrCodeDegenerateConfiguration, "collinear")), ErrCodeDegenerateConfiguration},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%v, %s) = false", tt.err, tt.code)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Errorf("Is(%v, INTERNAL_ERROR) = true", tt.err)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "depth must be non-negative"), "depth must be non-negative"},
		{"plain", errors.New("plain error"), "plain error"},
		{"with cause", Wrap(ErrCodeInvalidInput, errors.New("permission denied"), "read config"), "read config: permission denied"},
		{"nested", Wrap(ErrCodeInvalidSchemeData, New(ErrCodeInvalidFormat, "bad color"), "scheme Blues"), "scheme Blues: bad color"},
		{"behind fmt.Errorf", fmt.Errorf("render: %w", New(ErrCodeUnsupported, "rsvg-convert not found")), "rsvg-convert not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid input", New(ErrCodeInvalidInput, "x"), true},
		{"degenerate", New(ErrCodeDegenerateConfiguration, "x"), true},
		{"arithmetic", Wrap(ErrCodeArithmeticDegenerate, errors.New("k=0"), "x"), true},
		{"scheme not found", New(ErrCodeSchemeNotFound, "x"), false},
		{"internal", New(ErrCodeInternal, "x"), false},
		{"plain", errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInputError(tt.err); got != tt.want {
				t.Errorf("IsInputError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(ErrCodeSchemeNotFound, "Blues")) {
		t.Error("IsNotFound(SCHEME_NOT_FOUND) = false, want true")
	}
	if !IsNotFound(New(ErrCodeResolutionNotFound, "Blues/12")) {
		t.Error("IsNotFound(RESOLUTION_NOT_FOUND) = false, want true")
	}
	if IsNotFound(New(ErrCodeInvalidInput, "x")) {
		t.Error("IsNotFound(INVALID_INPUT) = true, want false")
	}
}
