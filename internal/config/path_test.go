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
	t.Setenv("PICSORT_TEST_DIR", "/tmp/pics")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/Pictures", want: filepath.Join(home, "Pictures")},
		{name: "env var", in: "$PICSORT_TEST_DIR/out", want: "/tmp/pics/out"},
		{name: "plain", in: "/srv/images", want: "/srv/images"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestResolvePath(t *testing.T) {
	got, err := ResolvePath("", "/var/lib/picsort/picsort.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/picsort/picsort.db", got)

	got, err = ResolvePath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}
