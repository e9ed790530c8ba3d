package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "postgres://x", "-a", "localhost"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{"-d", "postgres://x"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--dsn=postgres://y", "-a", "localhost"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{"--dsn=postgres://y"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--dsn=first", "-d", "second", "-x", "1"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{"--dsn=first", "-d", "second"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-d"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{"-d"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-d", "-notvalue"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{"-d"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowedFlags)
			assert.Equal(t, tc.want, got)
		})
	}
}
