package compgen

import (
	"errors"
	"strings"
	"testing"
)

func TestExpandComponent(t *testing.T) {
	type tc struct {
		input string
		opts  Options
		want  string
	}

	tests := map[string]tc{
		"link button": {
			input: `url!("https://x.test") => "Visit"`,
			want:  `builder.NewLinkButton("https://x.test").Label("Visit")`,
		},
		"unicode emoji": {
			input: `btn!("confirm") => emoji!('✔') "Confirm"`,
			want:  `builder.NewButton("confirm").Label("Confirm").Emoji('✔')`,
		},
		"escaped unicode emoji": {
			input: `btn!("confirm") => emoji!('\u2714') "Confirm"`,
			want:  `builder.NewButton("confirm").Label("Confirm").Emoji('✔')`,
		},
		"style": {
			input: `btn!("danger", styles.Danger) => "Delete"`,
			want:  `builder.NewButton("danger").Label("Delete").Style(styles.Danger)`,
		},
		"label fallback": {
			input: `btn!("x") => Continue`,
			want:  `builder.NewButton("x").Label("Continue")`,
		},
		"custom emoji": {
			input: `url!(home) => emoji!(42) "Home"`,
			want:  `builder.NewLinkButton(home).Label("Home").Emoji(id.NewEmojiID(42))`,
		},
		"emoji before style": {
			input: `btn!("x", style) => emoji!('★') "Star"`,
			want:  `builder.NewButton("x").Label("Star").Emoji('★').Style(style)`,
		},
		"label is quoted": {
			input: `btn!("q") => "say \"hi\""`,
			want:  `builder.NewButton("q").Label("say \"hi\"")`,
		},
		"custom target": {
			input: `btn!("x") => emoji!(7) "X"`,
			opts: Options{Target: Target{
				ImportPath:      "example.com/dc",
				Alias:           "dc",
				EmojiImportPath: "example.com/dc",
			}},
			want: `dc.NewButton("x").Label("X").Emoji(dc.NewEmojiID(7))`,
		},
		"line directives": {
			input: `url!(home) => Home`,
			opts:  Options{Filename: "menu.dcx", LineDirectives: true},
			want:  `builder.NewLinkButton(/*line menu.dcx:1:6*/home).Label("Home")`,
		},
		"line directives need a filename": {
			input: `url!(home) => Home`,
			opts:  Options{LineDirectives: true},
			want:  `builder.NewLinkButton(home).Label("Home")`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ExpandComponent(tt.input, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestExpandComponent_Errors(t *testing.T) {
	type tc struct {
		input   string
		wantMsg string
	}

	tests := map[string]tc{
		"row": {
			input:   `row!()`,
			wantMsg: MsgMisplacedRow,
		},
		"row after blank lines": {
			input:   "\n\n\trow!()\n",
			wantMsg: MsgMisplacedRow,
		},
		"trailing tokens win over row": {
			input:   `row!() row!()`,
			wantMsg: "unexpected Ident \"row\" after component",
		},
		"list in single entry": {
			input:   `btn!("a") => A, btn!("b") => B`,
			wantMsg: "unexpected , after component",
		},
		"unknown kind": {
			input:   `select!("a") => A`,
			wantMsg: MsgUnknownKind,
		},
		"bad emoji": {
			input:   `btn!("a") => emoji!("x") "A"`,
			wantMsg: MsgBadEmoji,
		},
		"unterminated comment": {
			input:   `btn!("a") => A /* open`,
			wantMsg: "unterminated block comment",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ExpandComponent(tt.input, Options{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var diag *Error
			if !errors.As(err, &diag) {
				t.Fatalf("error %T is not a *Error", err)
			}
			if diag.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", diag.Message, tt.wantMsg)
			}
		})
	}
}

func TestExpandComponent_CallSite(t *testing.T) {
	_, err := ExpandComponent("\n  row!()", Options{Filename: "snippet.dcx"})
	var diag *Error
	if !errors.As(err, &diag) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if got := diag.Pos.String(); got != "snippet.dcx:1:1" {
		t.Errorf("Pos = %s, want snippet.dcx:1:1", got)
	}
}

func TestExpand_InvalidTarget(t *testing.T) {
	type tc struct {
		target  Target
		wantMsg string
	}

	tests := map[string]tc{
		"alias is not an identifier": {
			target:  Target{Alias: "1x"},
			wantMsg: `target alias: "1x" is not a Go identifier`,
		},
		"aliases collide": {
			target:  Target{Alias: "ui", EmojiAlias: "ui"},
			wantMsg: `target alias "ui" is used for both`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := Options{Target: tt.target}
			for _, expand := range []func(string, Options) (string, error){ExpandComponent, ExpandComponents} {
				_, err := expand(`btn!("a") => A`, opts)
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("error = %v, want %q", err, tt.wantMsg)
				}
			}
		})
	}
}

func TestExpandComponents(t *testing.T) {
	type tc struct {
		input string
		opts  Options
		want  string
	}

	tests := map[string]tc{
		"two rows": {
			input: `btn!("a") => "A", btn!("b") => "B", row!(), btn!("c") => "C"`,
			want: `[]builder.CreateActionRow{` +
				`builder.ButtonsRow(builder.NewButton("a").Label("A"), builder.NewButton("b").Label("B")), ` +
				`builder.ButtonsRow(builder.NewButton("c").Label("C"))}`,
		},
		"empty": {
			input: "",
			want:  `[]builder.CreateActionRow{}`,
		},
		"only rows": {
			input: `row!(), row!(),`,
			want:  `[]builder.CreateActionRow{}`,
		},
		"url row": {
			input: `url!(a) => A, url!(b) => B`,
			want:  `[]builder.CreateActionRow{builder.ButtonsRow(builder.NewLinkButton(a).Label("A"), builder.NewLinkButton(b).Label("B"))}`,
		},
		"lenient mixed row": {
			input: `btn!("a") => A, url!(u) => U`,
			opts:  Options{LenientRows: true},
			want:  `[]builder.CreateActionRow{builder.ButtonsRow(builder.NewButton("a").Label("A"), builder.NewLinkButton(u).Label("U"))}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ExpandComponents(tt.input, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestExpandComponents_Overflow(t *testing.T) {
	input := `btn!("1")=>"1", btn!("2")=>"2", btn!("3")=>"3", btn!("4")=>"4", btn!("5")=>"5", btn!("6")=>"6"`
	got, err := ExpandComponents(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := strings.Split(got, "builder.ButtonsRow(")[1:]
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %s", len(rows), got)
	}
	if n := strings.Count(rows[0], "builder.NewButton("); n != 5 {
		t.Errorf("first row has %d buttons, want 5", n)
	}
	if n := strings.Count(rows[1], "builder.NewButton("); n != 1 {
		t.Errorf("second row has %d buttons, want 1", n)
	}
	for i := 1; i <= 6; i++ {
		want := `NewButton("` + string(rune('0'+i)) + `")`
		if idx := strings.Index(got, want); idx < 0 {
			t.Errorf("missing %s", want)
		}
	}
	if strings.Index(got, `NewButton("5")`) > strings.Index(got, `NewButton("6")`) {
		t.Error("order not preserved")
	}
}

func TestExpandComponents_Errors(t *testing.T) {
	type tc struct {
		input   string
		wantMsg string
	}

	tests := map[string]tc{
		"mixed row": {
			input:   `btn!("a") => A, url!(u) => U`,
			wantMsg: MsgMixedRow,
		},
		"unknown kind": {
			input:   `btn!("a") => A, link!(u) => U`,
			wantMsg: MsgUnknownKind,
		},
		"missing separator": {
			input:   `btn!("a") => A btn!("b") => B`,
			wantMsg: `expected ',' or EOF, got Ident "btn"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ExpandComponents(tt.input, Options{})
			var diag *Error
			if !errors.As(err, &diag) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if diag.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", diag.Message, tt.wantMsg)
			}
		})
	}
}

func TestExpander_Deterministic(t *testing.T) {
	input := `btn!("a") => emoji!(1) "A", row!(), url!(x) => emoji!('✔') "X", btn!("b", s) => B`
	first, err := ExpandComponents(input, Options{LenientRows: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range 5 {
		again, _ := ExpandComponents(input, Options{LenientRows: true})
		if again != first {
			t.Fatalf("expansion changed between runs:\n%s\n%s", first, again)
		}
	}
}

func TestExpander_Warnings(t *testing.T) {
	comps, perr := parseList(`btn!("a") => A, url!(u) => U, row!(), url!(v) => V`)
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	x := NewExpander(Options{LenientRows: true})
	if _, err := x.Rows(comps, Position{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(x.Warnings) != 1 || x.Warnings[0].Message != MsgMixedRow {
		t.Errorf("Warnings = %v", x.Warnings)
	}
	if x.UsesEmojiID() {
		t.Error("UsesEmojiID should be false without custom emoji")
	}
}

func TestExpandComponents_OnWarning(t *testing.T) {
	var got []*Error
	opts := Options{
		LenientRows: true,
		Filename:    "snippet",
		OnWarning:   func(w *Error) { got = append(got, w) },
	}

	expr, err := ExpandComponents(`btn!("a") => A, url!(u) => U`, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[]builder.CreateActionRow{builder.ButtonsRow(builder.NewButton("a").Label("A"), builder.NewLinkButton(u).Label("U"))}`
	if expr != want {
		t.Errorf("got %s\nwant %s", expr, want)
	}
	if len(got) != 1 || got[0].Pos.String() != "snippet:1:17" {
		t.Errorf("warnings = %v", got)
	}
}
