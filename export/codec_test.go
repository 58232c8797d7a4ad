package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/input"
)

// playedSnapshot returns a snapshot with moving entities and spent time
func playedSnapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	g := engine.New(engine.Options{Seed: 17, Device: input.DeviceKeyboard})
	g.KeyDown(input.KeyConfirm)
	g.KeyDown(input.KeyDown)
	g.Advance(250 * time.Millisecond)
	g.KeyUp(input.KeyDown)
	return g.Snapshot()
}

func TestCodecsPreserveSnapshot(t *testing.T) {
	snap := playedSnapshot(t)
	want, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	for _, f := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(snap, f)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			back, err := Decode(data, f)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			got, _ := json.Marshal(back)
			if !bytes.Equal(got, want) {
				t.Errorf("Round trip changed snapshot:\n%s\n%s", got, want)
			}
		})
	}
}

func TestYAMLUsesStableNames(t *testing.T) {
	data, err := Encode(playedSnapshot(t), FormatYAML)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(data)
	for _, want := range []string{"mode: playing", "deviceMode: keyboard", "speedBoostStacks:", "rareOrbs:"} {
		if !strings.Contains(text, want) {
			t.Errorf("YAML output missing %q", want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{"msgpack", FormatMsgpack},
		{" mp ", FormatMsgpack},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	if f, err := FormatForPath("out/run.yaml"); err != nil || f != FormatYAML {
		t.Errorf("FormatForPath(yaml) = %v, %v", f, err)
	}
	if _, err := FormatForPath("snapshot"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat for missing extension, got %v", err)
	}
}

func TestRestoreFromEncodedSnapshot(t *testing.T) {
	snap := playedSnapshot(t)
	var buf bytes.Buffer
	if err := Write(&buf, snap, FormatMsgpack); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Read(&buf, FormatMsgpack)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	g, err := engine.Restore(back, engine.Options{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if g.Mode() != engine.ModePlaying {
		t.Errorf("Expected restored game playing, got %s", g.Mode())
	}
}
