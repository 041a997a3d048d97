package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "bitmeter"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("database is locked"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				// Can't call isUnknownCommandError with nil
				return
			}
			got := isUnknownCommandError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "foo" for "bitmeter"`),
			want: "foo",
		},
		{
			name: "subcommand name",
			err:  errors.New(`unknown command "stats" for "bitmeter"`),
			want: "stats",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "prefs-list" for "bitmeter"`),
			want: "prefs-list",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractUnknownCommand(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	path := testDB(t, nil, nil)
	t.Cleanup(func() {
		dbFlag, prefixFlag, configFlag = "", "", ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"prefs", "get", "scale", "--db", path, "--prefix", "other."})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "1000\n", buf.String())
	assert.Equal(t, path, loadOptions().DB)
	assert.Equal(t, "other.", loadOptions().Prefix)
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"completion", "graph", "prefs", "status", "version", "web"}
	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}

	cmd, _, err := rootCmd.Find([]string{"about"})
	require.NoError(t, err)
	assert.Equal(t, "version", cmd.Name())
}
