// Package locale holds the player-facing string tables and language matching
package locale

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tableFS embed.FS

// UI labels the settings surface
type UI struct {
	Language       string `yaml:"language"`
	Device         string `yaml:"device"`
	DeviceAuto     string `yaml:"deviceAuto"`
	DeviceKeyboard string `yaml:"deviceKeyboard"`
	DevicePointer  string `yaml:"devicePointer"`
	SFXToggle      string `yaml:"sfxToggle"`
	SFXVolume      string `yaml:"sfxVolume"`
	BGMToggle      string `yaml:"bgmToggle"`
	BGMVolume      string `yaml:"bgmVolume"`
	On             string `yaml:"on"`
	Off            string `yaml:"off"`
	SettingsHint   string `yaml:"settingsHint"`
}

// HUD labels the in-game overlay
type HUD struct {
	Level            string `yaml:"level"`
	Score            string `yaml:"score"`
	Total            string `yaml:"total"`
	Health           string `yaml:"health"`
	Speed            string `yaml:"speed"`
	Items            string `yaml:"items"`
	ModeKeyboard     string `yaml:"modeKeyboard"`
	ModePointer      string `yaml:"modePointer"`
	ControlsKeyboard string `yaml:"controlsKeyboard"`
	ControlsPointer  string `yaml:"controlsPointer"`
}

// Panels holds the centered panel text per mode
// ClearLine1 and ClearLine2 are templates, see Fill
type Panels struct {
	StartTitle    string   `yaml:"startTitle"`
	StartKeyboard []string `yaml:"startKeyboard"`
	StartPointer  []string `yaml:"startPointer"`
	PausedTitle   string   `yaml:"pausedTitle"`
	PausedLines   []string `yaml:"pausedLines"`
	ClearTitle    string   `yaml:"clearTitle"`
	ClearLine1    string   `yaml:"clearLine1"`
	ClearLine2    string   `yaml:"clearLine2"`
	ClearLine3    string   `yaml:"clearLine3"`
	WinTitle      string   `yaml:"winTitle"`
	WinLines      []string `yaml:"winLines"`
	LoseTitle     string   `yaml:"loseTitle"`
	LoseLines     []string `yaml:"loseLines"`
}

// Table is one language's strings
type Table struct {
	Tag        string   `yaml:"tag"`
	LevelNames []string `yaml:"levelNames"`
	UI         UI       `yaml:"ui"`
	HUD        HUD      `yaml:"hud"`
	Panels     Panels   `yaml:"panels"`

	printer *message.Printer
}

// LevelName returns the display name for a level index
// Indices past the table fall back to a numbered name
func (t *Table) LevelName(index int) string {
	if index >= 0 && index < len(t.LevelNames) {
		return t.LevelNames[index]
	}
	return fmt.Sprintf("#%d", index+1)
}

// Number formats an integer with the language's grouping
func (t *Table) Number(n int) string {
	return t.printer.Sprintf("%d", n)
}

// Bundle holds every loaded table and matches user preferences against them
type Bundle struct {
	tables  map[string]*Table
	tags    []string // Matcher order, first is the fallback
	matcher language.Matcher
}

// DefaultLanguage is the fallback when no preference matches
const DefaultLanguage = "zh"

// Load parses the embedded tables
func Load() (*Bundle, error) {
	entries, err := tableFS.ReadDir("tables")
	if err != nil {
		return nil, fmt.Errorf("read locale tables: %w", err)
	}

	b := &Bundle{tables: make(map[string]*Table, len(entries))}
	for _, e := range entries {
		raw, err := tableFS.ReadFile(path.Join("tables", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		t, err := parseTable(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		b.tables[t.Tag] = t
	}
	if _, ok := b.tables[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("locale tables missing default language %q", DefaultLanguage)
	}

	b.tags = make([]string, 0, len(b.tables))
	for tag := range b.tables {
		if tag != DefaultLanguage {
			b.tags = append(b.tags, tag)
		}
	}
	sort.Strings(b.tags)
	b.tags = append([]string{DefaultLanguage}, b.tags...)

	supported := make([]language.Tag, len(b.tags))
	for i, tag := range b.tags {
		supported[i] = language.Make(tag)
	}
	b.matcher = language.NewMatcher(supported)
	return b, nil
}

// MustLoad is Load for the embedded tables, which are known to be valid
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func parseTable(raw []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	tag, err := language.Parse(t.Tag)
	if err != nil {
		return nil, fmt.Errorf("tag %q: %w", t.Tag, err)
	}
	t.printer = message.NewPrinter(tag)
	return &t, nil
}

// Languages returns the available tags, default first
func (b *Bundle) Languages() []string {
	return append([]string(nil), b.tags...)
}

// Table returns the table for a tag, the default table when unknown
func (b *Bundle) Table(tag string) *Table {
	if t, ok := b.tables[tag]; ok {
		return t
	}
	return b.tables[DefaultLanguage]
}

// Match picks the best available tag for a preference
// Accepts BCP 47 tags, Accept-Language lists and POSIX locale names
// such as en_US.UTF-8; anything unparseable yields the default
// Preferences are tried in priority order and the first one with a
// regional or exact match wins
func (b *Bundle) Match(pref string) string {
	pref = normalizePOSIX(pref)
	if pref == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil {
		return DefaultLanguage
	}
	for _, tag := range tags {
		if _, index, conf := b.matcher.Match(tag); conf >= language.High {
			return b.tags[index]
		}
	}
	return DefaultLanguage
}

// normalizePOSIX turns en_US.UTF-8 into en-US
func normalizePOSIX(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Fill replaces {name} placeholders with values
// Unknown placeholders are left as written
func Fill(template string, values map[string]any) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
