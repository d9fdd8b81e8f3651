// Package hidreport defines the input reports and the report descriptor of
// a combined keyboard/mouse/consumer-control HID device. The descriptor
// bytes are treated as an opaque blob by the compatibility layer; this
// package is the one place that knows their actual shape.
package hidreport

import "encoding/binary"

// Report IDs used by the combined report map.
const (
	ReportIDKeyboard byte = 0x01
	ReportIDMouse    byte = 0x02
	ReportIDConsumer byte = 0x03
)

// Keyboard modifier bits (byte 0 of the keyboard report).
const (
	ModLeftCtrl   byte = 0x01
	ModLeftShift  byte = 0x02
	ModLeftAlt    byte = 0x04
	ModLeftGUI    byte = 0x08
	ModRightCtrl  byte = 0x10
	ModRightShift byte = 0x20
	ModRightAlt   byte = 0x40
	ModRightGUI   byte = 0x80
)

// Common keyboard usage IDs (Usage Page 0x07, Keyboard/Keypad).
const (
	KeyA         byte = 0x04
	KeyZ         byte = 0x1D
	Key1         byte = 0x1E
	Key0         byte = 0x27
	KeyEnter     byte = 0x28
	KeyEscape    byte = 0x29
	KeyBackspace byte = 0x2A
	KeyTab       byte = 0x2B
	KeySpace     byte = 0x2C
)

// Mouse button bits (byte 0 of the mouse report payload).
const (
	ButtonLeft   byte = 0x01
	ButtonRight  byte = 0x02
	ButtonMiddle byte = 0x04
)

// Consumer control usages (Usage Page 0x0C).
const (
	UsagePlayPause  uint16 = 0x00CD
	UsageScanNext   uint16 = 0x00B5
	UsageScanPrev   uint16 = 0x00B6
	UsageStop       uint16 = 0x00B7
	UsageMute       uint16 = 0x00E2
	UsageVolumeUp   uint16 = 0x00E9
	UsageVolumeDown uint16 = 0x00EA
)

// KeyboardReport is a boot-style keyboard input report: one modifier byte,
// one reserved byte, six simultaneous key slots.
type KeyboardReport struct {
	Modifiers byte
	Keys      [6]byte
}

// Bytes encodes the report payload (without the report ID prefix).
func (r KeyboardReport) Bytes() []byte {
	payload := make([]byte, 8)
	payload[0] = r.Modifiers
	copy(payload[2:], r.Keys[:])
	return payload
}

// MouseReport is a relative-motion mouse input report.
type MouseReport struct {
	Buttons byte
	DX      int8
	DY      int8
	Wheel   int8
}

// Bytes encodes the report payload (without the report ID prefix).
func (r MouseReport) Bytes() []byte {
	return []byte{r.Buttons, byte(r.DX), byte(r.DY), byte(r.Wheel)}
}

// ConsumerReport encodes a consumer-control usage as the 2-byte
// little-endian payload of the consumer report. Usage 0 releases.
func ConsumerReport(usage uint16) []byte {
	payload := make([]byte, 2)
	binary.LittleEndian.PutUint16(payload, usage)
	return payload
}
