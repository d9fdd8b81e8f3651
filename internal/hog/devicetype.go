package hog

import "fmt"

// DeviceType classifies a connected central by host platform. The
// classification drives which CompatibilityStrategy shapes the HID
// characteristics for that connection.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceApple
	DeviceWindows
	DeviceAndroid
)

// String returns a human-readable device type name
func (t DeviceType) String() string {
	switch t {
	case DeviceUnknown:
		return "unknown"
	case DeviceApple:
		return "apple"
	case DeviceWindows:
		return "windows"
	case DeviceAndroid:
		return "android"
	default:
		return fmt.Sprintf("DeviceType(%d)", int(t))
	}
}

// ParseDeviceType maps a type name (as produced by String) back to its
// DeviceType. Returns an error for unrecognized names so CLI flags can
// reject typos instead of silently forcing the generic strategy.
func ParseDeviceType(s string) (DeviceType, error) {
	switch s {
	case "unknown":
		return DeviceUnknown, nil
	case "apple":
		return DeviceApple, nil
	case "windows":
		return DeviceWindows, nil
	case "android":
		return DeviceAndroid, nil
	default:
		return DeviceUnknown, fmt.Errorf("unknown device type: %q (must be unknown, apple, windows, or android)", s)
	}
}
