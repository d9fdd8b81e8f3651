// Package hog implements the host-compatibility core of a HID-over-GATT
// (HOGP) peripheral: classifying a connected central by platform, selecting
// a per-host CompatibilityStrategy, and shaping the HID Information, Report
// Map, and outbound reports for that host before they cross the GATT
// boundary.
//
// The GATT server itself (advertising, connections, notifications) is a
// collaborator behind the Peer, GattService, and GattCharacteristic
// interfaces; see the goble subpackage for the go-ble backed adapter.
package hog
