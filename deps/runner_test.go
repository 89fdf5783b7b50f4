package deps

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestLastLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"single", "single"},
		{"first\nsecond\n\n", "second"},
		{"a\n  \r\nInvalid data found when processing input\r\n", "Invalid data found when processing input"},
	}
	for _, tt := range tests {
		if got := LastLine([]byte(tt.in)); got != tt.want {
			t.Errorf("LastLine(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Name: "ffmpeg", Code: 1, Output: []byte("noise\nmuxing failed\n")}
	if err.Error() != "ffmpeg exited with code 1: muxing failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	wrapped := fmt.Errorf("cut: %w", err)
	if !IsExitError(wrapped) {
		t.Error("IsExitError should see through wrapping")
	}
	if IsExitError(&StartError{Name: "ffmpeg", Err: errors.New("no such file")}) {
		t.Error("StartError is not an ExitError")
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "segcut-definitely-missing-binary")
	var startErr *StartError
	if !errors.As(err, &startErr) {
		t.Fatalf("err = %v; want *StartError", err)
	}
}
