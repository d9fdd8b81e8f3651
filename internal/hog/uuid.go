package hog

import "strings"

// Bluetooth SIG assigned numbers for the HID-over-GATT profile,
// in normalized 16-bit short form (see NormalizeUUID).
const (
	HIDServiceUUID      = "1812"
	HIDInformationUUID  = "2a4a"
	ReportMapUUID       = "2a4b"
	HIDControlPointUUID = "2a4c"
	ReportUUID          = "2a4d"
	ProtocolModeUUID    = "2a4e"

	DeviceNameUUID      = "2a00"
	ReportReferenceUUID = "2908"
	CCCDescriptorUUID   = "2902"

	BatteryServiceUUID = "180f"
	BatteryLevelUUID   = "2a19"
)

// sigBaseSuffix is the tail of the Bluetooth SIG base UUID
// (0000xxxx-0000-1000-8000-00805f9b34fb) after normalization.
const sigBaseSuffix = "00001000800000805f9b34fb"

// NormalizeUUID converts a UUID string to a canonical comparison format:
// lowercase, no dashes, no 0x prefix. Full 128-bit UUIDs on the Bluetooth
// SIG base (0000xxxx-0000-1000-8000-00805f9b34fb) are collapsed to their
// 16-bit short form (xxxx). Custom 128-bit UUIDs are left at full length.
func NormalizeUUID(uuid string) string {
	normalized := strings.ToLower(strings.ReplaceAll(uuid, "-", ""))
	normalized = strings.TrimPrefix(normalized, "0x")

	if len(normalized) == 32 && strings.HasPrefix(normalized, "0000") && strings.HasSuffix(normalized, sigBaseSuffix) {
		return normalized[4:8]
	}
	return normalized
}

// UUIDEqual reports whether two UUID strings identify the same attribute,
// regardless of case, dashes, or short/long form.
func UUIDEqual(a, b string) bool {
	return NormalizeUUID(a) == NormalizeUUID(b)
}
