package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name       string
		config     string
		stdin      string
		args       []string
		want       string
		wantErr    string
		wantStderr string
	}{
		{
			name: "component from args",
			args: []string{"component", `btn!("ok")`, "=>", `"OK"`},
			want: `builder.NewButton("ok").Label("OK")` + "\n",
		},
		{
			name:  "split from stdin",
			args:  []string{"split"},
			stdin: "btn!(\"a\") => A,\nrow!(),\nurl!(u) => U\n",
			want:  `[]builder.CreateActionRow{builder.ButtonsRow(builder.NewButton("a").Label("A")), builder.ButtonsRow(builder.NewLinkButton(u).Label("U"))}` + "\n",
		},
		{
			name:       "mixed row is an error",
			args:       []string{"split", `btn!("a") => A, url!(u) => U`},
			wantErr:    "encountered 1 error",
			wantStderr: "<args>:1:17: error: cannot mix url and btn components in the same row",
		},
		{
			name:       "mixed row is a warning when lenient",
			config:     "strict_rows: false\n",
			args:       []string{"split", `btn!("a") => A, url!(u) => U`},
			want:       `[]builder.CreateActionRow{builder.ButtonsRow(builder.NewButton("a").Label("A"), builder.NewLinkButton(u).Label("U"))}` + "\n",
			wantStderr: "<args>:1:17: warning: cannot mix url and btn components in the same row",
		},
		{
			name:       "row outside a list",
			stdin:      "row!()",
			args:       []string{"component"},
			wantErr:    "encountered 1 error",
			wantStderr: "<stdin>:1:1: error: cannot create new row outside of discord_components! macro",
		},
		{
			name:   "custom target",
			config: "target:\n  import_path: example.com/dc\n  alias: dc\n",
			args:   []string{"component", `url!(u) => U`},
			want:   `dc.NewLinkButton(u).Label("U")` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			if tt.config != "" {
				files["btngen.yaml"] = tt.config
			}
			inTempDir(t, files)

			args := append([]string{"--no-color", "expand"}, tt.args...)
			stdout, stderr, err := execute(context.Background(), tt.stdin, args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			} else {
				require.NoError(t, err, stderr)
			}
			assert.Equal(t, tt.want, stdout)
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
		})
	}
}
