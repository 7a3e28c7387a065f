package compgen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignorePositions drops source locations and comment layout so tests can
// compare component shapes.
var ignorePositions = cmp.Options{
	cmpopts.IgnoreTypes(Position{}),
	cmpopts.IgnoreFields(Component{}, "BlankLineBefore", "LeadingComments", "TrailingComments"),
	cmpopts.IgnoreFields(Label{}, "Bare"),
}

func parseOne(src string) (*Component, *Error) {
	p := NewParser(NewLexer("test.dcx", src))
	p.skipNewlines()
	return p.parseSingleComponent(Position{File: "test.dcx", Line: 1, Column: 1}, TokenEOF)
}

func parseList(src string) ([]*Component, *Error) {
	p := NewParser(NewLexer("test.dcx", src))
	p.skipNewlines()
	return p.parseComponentList(Position{File: "test.dcx", Line: 1, Column: 1}, TokenEOF)
}

func TestParser_Component(t *testing.T) {
	type tc struct {
		input string
		want  *Component
	}

	tests := map[string]tc{
		"button with identifier label": {
			input: `btn!("confirm") => Confirm`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "confirm",
				Label:    &Label{Text: "Confirm"},
			},
		},
		"button with string label": {
			input: `btn!("x") => "Click me"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "x",
				Label:    &Label{Text: "Click me"},
			},
		},
		"button with raw string id": {
			input: "btn!(`raw`) => Raw",
			want: &Component{
				Kind:     KindButton,
				CustomID: "raw",
				Label:    &Label{Text: "Raw"},
			},
		},
		"button with style": {
			input: `btn!("x", styles.Danger) => "X"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "x",
				Style:    &GoExpr{Code: "styles.Danger"},
				Label:    &Label{Text: "X"},
			},
		},
		"url with literal": {
			input: `url!("https://x") => Docs`,
			want: &Component{
				Kind:  KindURL,
				URL:   &GoExpr{Code: `"https://x"`},
				Label: &Label{Text: "Docs"},
			},
		},
		"url with call expression": {
			input: `url!(fmt.Sprintf("%s/%d", base, id)) => Go`,
			want: &Component{
				Kind:  KindURL,
				URL:   &GoExpr{Code: `fmt.Sprintf("%s/%d", base, id)`},
				Label: &Label{Text: "Go"},
			},
		},
		"url with composite index": {
			input: `url!(links[key]) => Open`,
			want: &Component{
				Kind:  KindURL,
				URL:   &GoExpr{Code: `links[key]`},
				Label: &Label{Text: "Open"},
			},
		},
		"unicode emoji": {
			input: `btn!("confirm") => emoji!('✔') "Confirm"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "confirm",
				Label:    &Label{Text: "Confirm", Emoji: &Emoji{Kind: EmojiUnicode, Char: '✔'}},
			},
		},
		"custom emoji": {
			input: `url!(home) => emoji!(123456789) "Home"`,
			want: &Component{
				Kind:  KindURL,
				URL:   &GoExpr{Code: "home"},
				Label: &Label{Text: "Home", Emoji: &Emoji{Kind: EmojiCustom, ID: 123456789}},
			},
		},
		"hex emoji id": {
			input: `btn!("h") => emoji!(0x10) "Hex"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "h",
				Label:    &Label{Text: "Hex", Emoji: &Emoji{Kind: EmojiCustom, ID: 16}},
			},
		},
		"leading zero emoji id is decimal": {
			input: `btn!("z") => emoji!(0123) "Zero"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "z",
				Label:    &Label{Text: "Zero", Emoji: &Emoji{Kind: EmojiCustom, ID: 123}},
			},
		},
		"leading zero with non-octal digits": {
			input: `btn!("z") => emoji!(089) "Zero"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "z",
				Label:    &Label{Text: "Zero", Emoji: &Emoji{Kind: EmojiCustom, ID: 89}},
			},
		},
		"octal and binary emoji ids": {
			input: `btn!("o") => emoji!(0o17) "Oct"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "o",
				Label:    &Label{Text: "Oct", Emoji: &Emoji{Kind: EmojiCustom, ID: 15}},
			},
		},
		"underscored emoji id": {
			input: `btn!("u") => emoji!(1_000) "Thousand"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "u",
				Label:    &Label{Text: "Thousand", Emoji: &Emoji{Kind: EmojiCustom, ID: 1000}},
			},
		},
		"declaration keyword label": {
			input: `btn!("c") => component`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "c",
				Label:    &Label{Text: "component"},
			},
		},
		"quoted emoji is plain text": {
			input: `btn!("e") => "emoji"`,
			want: &Component{
				Kind:     KindButton,
				CustomID: "e",
				Label:    &Label{Text: "emoji"},
			},
		},
		"row": {
			input: `row!()`,
			want:  &Component{Kind: KindRow},
		},
		"spread over lines": {
			input: "btn!(\n\t\"a\",\n\tstyle\n) =>\n\tA",
			want: &Component{
				Kind:     KindButton,
				CustomID: "a",
				Style:    &GoExpr{Code: "style"},
				Label:    &Label{Text: "A"},
			},
		},
		"comment inside expression": {
			input: `url!(base /* docs root */ + "/docs") => Docs`,
			want: &Component{
				Kind:  KindURL,
				URL:   &GoExpr{Code: `base /* docs root */ + "/docs"`},
				Label: &Label{Text: "Docs"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseOne(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("component mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_LabelSpelling(t *testing.T) {
	type tc struct {
		input    string
		wantBare bool
	}

	tests := map[string]tc{
		"identifier":     {input: `btn!("a") => Save`, wantBare: true},
		"string":         {input: `btn!("a") => "Save"`},
		"after emoji":    {input: `btn!("a") => emoji!('★') "Save"`},
		"quoted keyword": {input: `btn!("a") => "component"`},
		"bare keyword":   {input: `btn!("a") => import`, wantBare: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseOne(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Label.Bare != tt.wantBare {
				t.Errorf("Bare = %v, want %v", got.Label.Bare, tt.wantBare)
			}
		})
	}
}

func TestParser_ComponentErrors(t *testing.T) {
	type tc struct {
		input   string
		wantMsg string
		wantPos string
	}

	tests := map[string]tc{
		"unknown kind": {
			input:   `foo!("a") => A`,
			wantMsg: MsgUnknownKind,
			wantPos: "test.dcx:1:1",
		},
		"unknown kind mid snippet": {
			input:   "\n\n  link!(x) => A",
			wantMsg: MsgUnknownKind,
			wantPos: "test.dcx:1:1",
		},
		"missing bang": {
			input:   `btn("a") => A`,
			wantMsg: "expected !, got (",
			wantPos: "test.dcx:1:4",
		},
		"missing arrow": {
			input:   `btn!("a") A`,
			wantMsg: `expected =>, got Ident "A"`,
			wantPos: "test.dcx:1:11",
		},
		"button id not a string": {
			input:   `btn!(a) => A`,
			wantMsg: `expected string literal, got Ident "a"`,
			wantPos: "test.dcx:1:6",
		},
		"unbalanced parens": {
			input:   `btn!("a" => A`,
			wantMsg: "expected ), got =>",
			wantPos: "test.dcx:1:10",
		},
		"string emoji": {
			input:   `btn!("a") => emoji!("x") "X"`,
			wantMsg: MsgBadEmoji,
			wantPos: "test.dcx:1:21",
		},
		"float emoji": {
			input:   `btn!("a") => emoji!(1.5) "X"`,
			wantMsg: MsgBadEmoji,
			wantPos: "test.dcx:1:21",
		},
		"bool emoji": {
			input:   `btn!("a") => emoji!(true) "X"`,
			wantMsg: MsgBadEmoji,
			wantPos: "test.dcx:1:21",
		},
		"emoji not a literal": {
			input:   `btn!("a") => emoji!(x) "X"`,
			wantMsg: `expected literal, got Ident "x"`,
			wantPos: "test.dcx:1:21",
		},
		"emoji without text": {
			input:   `btn!("a") => emoji!('x')`,
			wantMsg: "expected string literal, got EOF",
			wantPos: "test.dcx:1:25",
		},
		"bare emoji label": {
			input:   `btn!("a") => emoji`,
			wantMsg: "expected !, got EOF",
			wantPos: "test.dcx:1:19",
		},
		"emoji id overflow": {
			input:   `btn!("a") => emoji!(99999999999999999999) "X"`,
			wantMsg: "invalid emoji id 99999999999999999999",
			wantPos: "test.dcx:1:21",
		},
		"empty url": {
			input:   `url!() => A`,
			wantMsg: "expected expression, got )",
			wantPos: "test.dcx:1:6",
		},
		"reserved keyword label": {
			input:   `btn!("a") => type`,
			wantMsg: "expected identifier or string literal, got type",
			wantPos: "test.dcx:1:14",
		},
		"trailing tokens": {
			input:   `btn!("a") => A extra`,
			wantMsg: `unexpected Ident "extra" after component`,
			wantPos: "test.dcx:1:16",
		},
		"row with label": {
			input:   `row!() => A`,
			wantMsg: "unexpected => after component",
			wantPos: "test.dcx:1:8",
		},
		"row with argument": {
			input:   `row!(x)`,
			wantMsg: `expected ), got Ident "x"`,
			wantPos: "test.dcx:1:6",
		},
		"unterminated label": {
			input:   `btn!("a") => "oops`,
			wantMsg: "unterminated string literal",
			wantPos: "test.dcx:1:14",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseOne(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if got := err.Pos.String(); got != tt.wantPos {
				t.Errorf("Pos = %s, want %s", got, tt.wantPos)
			}
		})
	}
}

func TestParser_InvalidExpression(t *testing.T) {
	_, err := parseOne(`url!(a +) => A`)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Message, `invalid Go expression "a +"`) {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestParser_ComponentList(t *testing.T) {
	type tc struct {
		input     string
		wantKinds []Kind
	}

	tests := map[string]tc{
		"empty": {
			input:     "",
			wantKinds: nil,
		},
		"single": {
			input:     `btn!("a") => A`,
			wantKinds: []Kind{KindButton},
		},
		"trailing comma": {
			input:     `btn!("a") => A, btn!("b") => B,`,
			wantKinds: []Kind{KindButton, KindButton},
		},
		"rows and urls": {
			input: `btn!("a") => A,
row!(),
url!(u) => U,
row!(),
row!()`,
			wantKinds: []Kind{KindButton, KindRow, KindURL, KindRow, KindRow},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			comps, err := parseList(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var kinds []Kind
			for _, c := range comps {
				kinds = append(kinds, c.Kind)
			}
			if diff := cmp.Diff(tt.wantKinds, kinds); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_ComponentListErrors(t *testing.T) {
	type tc struct {
		input   string
		wantMsg string
	}

	tests := map[string]tc{
		"missing comma": {
			input:   `btn!("a") => A btn!("b") => B`,
			wantMsg: `expected ',' or EOF, got Ident "btn"`,
		},
		"double comma": {
			input:   `btn!("a") => A,, btn!("b") => B`,
			wantMsg: "expected identifier, got ,",
		},
		"unknown kind after rows": {
			input:   `row!(), menu!() => M`,
			wantMsg: MsgUnknownKind,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseList(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}
