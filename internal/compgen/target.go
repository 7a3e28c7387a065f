package compgen

import (
	"fmt"
	"go/token"
	"strings"
)

// Target names the chat-client builder API that generated code calls into.
// Every symbol is package-qualified with its alias at generation time.
type Target struct {
	ImportPath    string `yaml:"import_path"`
	Alias         string `yaml:"alias"`
	ButtonType    string `yaml:"button_type"`     // e.g. "*CreateButton"
	NewButton     string `yaml:"new_button"`      // func(customID string) ButtonType
	NewLinkButton string `yaml:"new_link_button"` // func(url string) ButtonType
	ActionRowType string `yaml:"action_row_type"`
	ButtonsRow    string `yaml:"buttons_row"` // func(...ButtonType) ActionRowType

	EmojiImportPath string `yaml:"emoji_import_path"`
	EmojiAlias      string `yaml:"emoji_alias"`
	EmojiID         string `yaml:"emoji_id"` // func(uint64) EmojiID
}

// DefaultTarget returns the builder API of github.com/keia-bot/discord.
func DefaultTarget() Target {
	return Target{
		ImportPath:      "github.com/keia-bot/discord/builder",
		Alias:           "builder",
		ButtonType:      "*CreateButton",
		NewButton:       "NewButton",
		NewLinkButton:   "NewLinkButton",
		ActionRowType:   "CreateActionRow",
		ButtonsRow:      "ButtonsRow",
		EmojiImportPath: "github.com/keia-bot/discord/id",
		EmojiAlias:      "id",
		EmojiID:         "NewEmojiID",
	}
}

// WithDefaults fills empty fields from DefaultTarget.
func (t Target) WithDefaults() Target {
	d := DefaultTarget()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&t.ImportPath, d.ImportPath)
	fill(&t.Alias, d.Alias)
	fill(&t.ButtonType, d.ButtonType)
	fill(&t.NewButton, d.NewButton)
	fill(&t.NewLinkButton, d.NewLinkButton)
	fill(&t.ActionRowType, d.ActionRowType)
	fill(&t.ButtonsRow, d.ButtonsRow)
	fill(&t.EmojiImportPath, d.EmojiImportPath)
	fill(&t.EmojiAlias, d.EmojiAlias)
	fill(&t.EmojiID, d.EmojiID)
	return t
}

// Validate checks that every symbol is a Go identifier and that the two
// import aliases do not collide.
func (t Target) Validate() error {
	idents := []struct {
		field, value string
	}{
		{"alias", t.Alias},
		{"button_type", strings.TrimPrefix(t.ButtonType, "*")},
		{"new_button", t.NewButton},
		{"new_link_button", t.NewLinkButton},
		{"action_row_type", t.ActionRowType},
		{"buttons_row", t.ButtonsRow},
		{"emoji_alias", t.EmojiAlias},
		{"emoji_id", t.EmojiID},
	}
	for _, id := range idents {
		if !token.IsIdentifier(id.value) {
			return fmt.Errorf("target %s: %q is not a Go identifier", id.field, id.value)
		}
	}
	if t.ImportPath == "" {
		return fmt.Errorf("target import_path is required")
	}
	if t.EmojiImportPath == "" {
		return fmt.Errorf("target emoji_import_path is required")
	}
	if t.Alias == t.EmojiAlias && t.ImportPath != t.EmojiImportPath {
		return fmt.Errorf("target alias %q is used for both %s and %s", t.Alias, t.ImportPath, t.EmojiImportPath)
	}
	return nil
}

// qualify prefixes a symbol with alias, keeping a leading pointer star.
func qualify(alias, sym string) string {
	if rest, ok := strings.CutPrefix(sym, "*"); ok {
		return "*" + alias + "." + rest
	}
	return alias + "." + sym
}

func (t Target) buttonType() string    { return qualify(t.Alias, t.ButtonType) }
func (t Target) actionRowType() string { return qualify(t.Alias, t.ActionRowType) }

// imports returns the imports generated code needs: the builder package, and
// the emoji id package when usesEmojiID is set.
func (t Target) imports(usesEmojiID bool) []Import {
	imps := []Import{{Alias: t.Alias, Path: t.ImportPath}}
	if usesEmojiID && t.EmojiImportPath != t.ImportPath {
		imps = append(imps, Import{Alias: t.EmojiAlias, Path: t.EmojiImportPath})
	}
	return imps
}
