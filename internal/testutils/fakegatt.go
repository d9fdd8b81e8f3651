// Package testutils provides in-memory fakes for the GATT boundary so the
// compatibility core can be tested without a Bluetooth stack.
package testutils

import "github.com/srg/hogpd/internal/hog"

// FakePeer is a test double for a connected central.
type FakePeer struct {
	Addr     string
	PeerName string
}

func (p *FakePeer) Address() string { return p.Addr }
func (p *FakePeer) Name() string    { return p.PeerName }

// NewPeer creates a fake peer with the given address and name.
func NewPeer(address, name string) *FakePeer {
	return &FakePeer{Addr: address, PeerName: name}
}

// FakeCharacteristic is an in-memory GATT characteristic.
type FakeCharacteristic struct {
	uuid  string
	value []byte
}

func NewCharacteristic(uuid string, value []byte) *FakeCharacteristic {
	return &FakeCharacteristic{uuid: uuid, value: value}
}

func (c *FakeCharacteristic) UUID() string { return c.uuid }

func (c *FakeCharacteristic) Value() []byte { return c.value }

func (c *FakeCharacteristic) SetValue(value []byte) { c.value = value }

// FakeService is an in-memory GATT service.
type FakeService struct {
	uuid            string
	characteristics []*FakeCharacteristic
}

func (s *FakeService) UUID() string { return s.uuid }

// FindCharacteristic returns the first characteristic matching uuid in any
// normalized form, or nil.
func (s *FakeService) FindCharacteristic(uuid string) hog.GattCharacteristic {
	for _, c := range s.characteristics {
		if hog.UUIDEqual(c.uuid, uuid) {
			return c
		}
	}
	return nil
}

// Characteristics returns the raw fakes for direct assertions.
func (s *FakeService) Characteristics() []*FakeCharacteristic {
	return s.characteristics
}

// ServiceBuilder builds a FakeService.
type ServiceBuilder struct {
	service *FakeService
}

// NewServiceBuilder starts a builder for a service with the given UUID.
func NewServiceBuilder(uuid string) *ServiceBuilder {
	return &ServiceBuilder{service: &FakeService{uuid: uuid}}
}

// WithCharacteristic adds a characteristic with an initial value.
func (b *ServiceBuilder) WithCharacteristic(uuid string, value []byte) *ServiceBuilder {
	b.service.characteristics = append(b.service.characteristics, NewCharacteristic(uuid, value))
	return b
}

// Build returns the assembled service.
func (b *ServiceBuilder) Build() *FakeService {
	return b.service
}

// NewHIDService builds a fake HID service carrying the standard HOGP
// characteristics with zeroed values.
func NewHIDService() *FakeService {
	return NewServiceBuilder(hog.HIDServiceUUID).
		WithCharacteristic(hog.HIDInformationUUID, make([]byte, 4)).
		WithCharacteristic(hog.ReportMapUUID, nil).
		WithCharacteristic(hog.HIDControlPointUUID, nil).
		WithCharacteristic(hog.ReportUUID, nil).
		Build()
}
