package locale

import (
	"testing"

	"github.com/lixenwraith/gem-drift/parameter"
)

func TestLoadTables(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	langs := b.Languages()
	if len(langs) != 2 || langs[0] != "zh" || langs[1] != "en" {
		t.Fatalf("Expected [zh en], got %v", langs)
	}
	for _, tag := range langs {
		tbl := b.Table(tag)
		if len(tbl.LevelNames) != parameter.LevelCount {
			t.Errorf("%s: expected %d level names, got %d", tag, parameter.LevelCount, len(tbl.LevelNames))
		}
		if tbl.HUD.Level == "" || tbl.Panels.StartTitle == "" || len(tbl.Panels.StartKeyboard) == 0 {
			t.Errorf("%s: table has empty entries", tag)
		}
		if tbl.UI.On == "" || tbl.UI.Off == "" {
			t.Errorf("%s: on/off labels missing", tag)
		}
	}
	if got := b.Table("en").LevelName(0); got != "Meadow Dash" {
		t.Errorf("Expected Meadow Dash, got %q", got)
	}
	if got := b.Table("en").LevelName(20); got != "#21" {
		t.Errorf("Expected numbered fallback, got %q", got)
	}
	if b.Table("fr") != b.Table("zh") {
		t.Error("Unknown tag should fall back to the default table")
	}
}

func TestMatch(t *testing.T) {
	b := MustLoad()
	tests := []struct {
		in, want string
	}{
		{"", "zh"},
		{"C", "zh"},
		{"en", "en"},
		{"en_US.UTF-8", "en"},
		{"en-GB", "en"},
		{"zh_CN.UTF-8", "zh"},
		{"zh-TW", "zh"},
		{"fr-FR,en;q=0.8", "en"},
		{"de,fr;q=0.9", "zh"},
		{"ja,en-US;q=0.7,zh;q=0.5", "en"},
		{"!!", "zh"},
	}
	for _, tt := range tests {
		if got := b.Match(tt.in); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFill(t *testing.T) {
	tbl := MustLoad().Table("en")
	got := Fill(tbl.Panels.ClearLine1, map[string]any{"level": 2, "name": tbl.LevelName(1)})
	if got != "Cleared Level 2: River Rush" {
		t.Errorf("Unexpected fill %q", got)
	}
	if got := Fill("bag {items} {missing}", map[string]any{"items": 3}); got != "bag 3 {missing}" {
		t.Errorf("Unexpected fill %q", got)
	}
}

func TestNumber(t *testing.T) {
	tbl := MustLoad().Table("en")
	if got := tbl.Number(12345); got != "12,345" {
		t.Errorf("Number(12345) = %q, want 12,345", got)
	}
}
