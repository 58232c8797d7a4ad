package input

import (
	"fmt"
	"strings"
)

// DeviceMode selects which input channel drives movement
type DeviceMode uint8

const (
	DeviceAuto     DeviceMode = iota // Resolved by a detector at startup or on switch
	DevicePointer                    // Drag to move, tap/double-tap for actions
	DeviceKeyboard                   // Digital directions from held keys
)

// String returns the config/snapshot name
func (d DeviceMode) String() string {
	switch d {
	case DevicePointer:
		return "pointer"
	case DeviceKeyboard:
		return "keyboard"
	default:
		return "auto"
	}
}

// MarshalText implements encoding.TextMarshaler
func (d DeviceMode) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *DeviceMode) UnmarshalText(b []byte) error {
	m, err := ParseDeviceMode(string(b))
	if err != nil {
		return err
	}
	*d = m
	return nil
}

// ParseDeviceMode accepts auto, pointer (mobile, touch) and keyboard (desktop)
func ParseDeviceMode(s string) (DeviceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DeviceAuto, nil
	case "pointer", "mobile", "touch":
		return DevicePointer, nil
	case "keyboard", "desktop":
		return DeviceKeyboard, nil
	}
	return DeviceAuto, fmt.Errorf("unknown device mode %q", s)
}

// Detector reports the device mode auto should resolve to
type Detector func() DeviceMode

// Resolve maps auto through the detector, keyboard when no detector is given
// or the detector itself answers auto
func (d DeviceMode) Resolve(detect Detector) DeviceMode {
	if d != DeviceAuto {
		return d
	}
	if detect != nil {
		if m := detect(); m != DeviceAuto {
			return m
		}
	}
	return DeviceKeyboard
}

// Next cycles auto -> pointer -> keyboard -> auto
func (d DeviceMode) Next() DeviceMode {
	switch d {
	case DeviceAuto:
		return DevicePointer
	case DevicePointer:
		return DeviceKeyboard
	default:
		return DeviceAuto
	}
}
