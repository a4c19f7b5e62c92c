package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("PALLET_TEST_DIR", "/tmp/pallet")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "absolute untouched", input: "/var/lib/pallet.db", want: "/var/lib/pallet.db"},
		{name: "tilde", input: "~/data.db", want: filepath.Join(home, "data.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "env var", input: "$PALLET_TEST_DIR/data.db", want: "/tmp/pallet/data.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
