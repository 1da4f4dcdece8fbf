package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestTerminal_Mode(t *testing.T) {
	tests := []struct {
		name string
		term Terminal
		want Mode
	}{
		{"both terminals", Terminal{StdinTTY: true, StdoutTTY: true}, ModeInteractive},
		{"piped stdin", Terminal{StdinTTY: false, StdoutTTY: true}, ModeNonInteractive},
		{"redirected stdout", Terminal{StdinTTY: true, StdoutTTY: false}, ModeNonInteractive},
		{"forced with 1", Terminal{Getenv: envOf(map[string]string{EnvNonInteractive: "1"}), StdinTTY: true, StdoutTTY: true}, ModeNonInteractive},
		{"forced with true", Terminal{Getenv: envOf(map[string]string{EnvNonInteractive: "true"}), StdinTTY: true, StdoutTTY: true}, ModeNonInteractive},
		{"explicitly not forced", Terminal{Getenv: envOf(map[string]string{EnvNonInteractive: "0"}), StdinTTY: true, StdoutTTY: true}, ModeInteractive},
		{"unparsable value ignored", Terminal{Getenv: envOf(map[string]string{EnvNonInteractive: "yes"}), StdinTTY: true, StdoutTTY: true}, ModeInteractive},
		{"CI", Terminal{Getenv: envOf(map[string]string{"CI": "true"}), StdinTTY: true, StdoutTTY: true}, ModeNonInteractive},
		{"NO_COLOR", Terminal{Getenv: envOf(map[string]string{"NO_COLOR": "1"}), StdinTTY: true, StdoutTTY: true}, ModeNonInteractive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.Mode())
		})
	}
}

func TestDetectMode_ForcedByEnvironment(t *testing.T) {
	t.Setenv(EnvNonInteractive, "true")

	assert.Equal(t, ModeNonInteractive, DetectMode())
	assert.False(t, IsInteractive())
}
