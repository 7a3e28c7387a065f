package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	unformatted = "package x\ncomponent A() {\nbtn!( \"a\" )=>A\n}\n"
	formatted   = "package x\n\ncomponent A() {\n\tbtn!(\"a\") => A\n}\n"
)

func TestFmt(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    string
		wantStdout []string
		wantStderr []string
		wantFile   string
	}{
		{
			name:       "in place",
			wantStdout: []string{"Formatted: a.dcx\n"},
			wantFile:   formatted,
		},
		{
			name:       "check",
			args:       []string{"--check"},
			wantErr:    "1 file(s) not formatted",
			wantStderr: []string{"a.dcx is not formatted"},
			wantFile:   unformatted,
		},
		{
			name:       "stdout",
			args:       []string{"--stdout", "a.dcx"},
			wantStdout: []string{formatted},
			wantFile:   unformatted,
		},
		{
			name: "diff",
			args: []string{"--diff"},
			wantStdout: []string{
				"--- a.dcx.orig\n+++ a.dcx\n",
				"-btn!( \"a\" )=>A\n",
				"+\tbtn!(\"a\") => A\n",
			},
			wantFile: unformatted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t, map[string]string{
				"a.dcx": unformatted,
				"b.dcx": formatted,
			})

			stdout, stderr, err := execute(context.Background(), "", append([]string{"fmt"}, tt.args...)...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			} else {
				require.NoError(t, err, stderr)
			}

			for _, want := range tt.wantStdout {
				assert.Contains(t, stdout, want)
			}
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr, want)
			}
			assert.NotContains(t, stdout+stderr, "b.dcx", "formatted file was reported")
			assert.Equal(t, tt.wantFile, readFile(t, filepath.Join(dir, "a.dcx")))
		})
	}
}

func TestFmt_ParseError(t *testing.T) {
	dir := inTempDir(t, map[string]string{"bad.dcx": "package x\ncomponent A() {\n\tfoo!() => A\n}\n"})

	_, stderr, err := execute(context.Background(), "", "fmt", "--no-color")
	require.Error(t, err)
	assert.Equal(t, "1 file(s) had errors", err.Error())
	assert.Contains(t, stderr, "bad.dcx:2:1: error: expected url or btn")
	assert.Equal(t, "package x\ncomponent A() {\n\tfoo!() => A\n}\n", readFile(t, filepath.Join(dir, "bad.dcx")))
}

func TestFmt_ExclusiveFlags(t *testing.T) {
	inTempDir(t, map[string]string{"a.dcx": formatted})

	_, _, err := execute(context.Background(), "", "fmt", "--check", "--diff")
	require.Error(t, err)
}

func TestUnifiedDiff(t *testing.T) {
	assert.Empty(t, unifiedDiff("x.dcx", "same\n", "same\n"))

	got := unifiedDiff("x.dcx", "a\nb\n", "a\nc\n")
	assert.Equal(t, "--- x.dcx.orig\n+++ x.dcx\n@@ -1,2 +1,2 @@\n a\n-b\n+c\n", got)
}
