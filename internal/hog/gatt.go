package hog

// Peer represents a connected BLE central. Address is the stable identity
// used to cache strategy resolutions; Name may be empty when the central
// did not expose one.
type Peer interface {
	Address() string
	Name() string
}

// GattCharacteristic is the minimal view of a GATT characteristic the
// compatibility core needs: identity plus get/set of the stored value.
type GattCharacteristic interface {
	UUID() string
	Value() []byte
	SetValue(value []byte)
}

// GattService exposes characteristic lookup on a live GATT service.
// FindCharacteristic returns nil when the service has no characteristic
// with the given UUID (accepted in any form NormalizeUUID handles).
type GattService interface {
	UUID() string
	FindCharacteristic(uuid string) GattCharacteristic
}
