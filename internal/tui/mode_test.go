package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDetectOutputMode(t *testing.T) {
	tests := []struct {
		name       string
		forceColor bool
		noColor    bool
		plain      bool
		tty        bool
		env        map[string]string
		want       OutputMode
	}{
		{name: "terminal", tty: true, want: OutputModeInteractive},
		{name: "plain flag", plain: true, tty: true, want: OutputModePlain},
		{name: "no-color flag", noColor: true, tty: true, want: OutputModePlain},
		{name: "NO_COLOR env", tty: true, env: map[string]string{"NO_COLOR": ""}, want: OutputModePlain},
		{name: "dumb terminal", tty: true, env: map[string]string{"TERM": "dumb"}, want: OutputModePlain},
		{name: "pipe", want: OutputModePlain},
		{name: "pipe with force color", forceColor: true, want: OutputModeStyled},
		{name: "CI", tty: true, env: map[string]string{"CI": "true"}, want: OutputModeStyled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.forceColor, tt.noColor, tt.plain, tt.tty, envFrom(tt.env))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
}
