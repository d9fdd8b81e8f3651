// Package goble adapts the go-ble peripheral API to the hog boundary
// interfaces. It keeps characteristic values in its own storage because
// go-ble forbids mixing static values with dynamic read handlers, and the
// compatibility layer needs both: strategies patch stored values while
// reads may be intercepted per connecting host.
package goble

import (
	"sync"

	"github.com/go-ble/ble"
	"github.com/sirupsen/logrus"
	"github.com/srg/hogpd/internal/hidreport"
	"github.com/srg/hogpd/internal/hog"
)

// ReadInterceptor resolves the response for a characteristic read from a
// given peer. Implemented by the peripheral layer, which consults the
// per-host strategy before falling back to the stored value.
type ReadInterceptor func(peer hog.Peer, characteristic hog.GattCharacteristic) []byte

// Characteristic is a GATT characteristic with adapter-owned value
// storage, safe for concurrent reads and strategy-driven rewrites.
type Characteristic struct {
	uuid string

	mu    sync.RWMutex
	value []byte

	ch *ble.Characteristic
}

func (c *Characteristic) UUID() string { return c.uuid }

func (c *Characteristic) Value() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Characteristic) SetValue(value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	c.value = stored
	c.mu.Unlock()
}

// Service wraps a ble.Service exposing the hog.GattService view of it.
type Service struct {
	uuid            string
	characteristics []*Characteristic
	bleService      *ble.Service
	hub             *notifyHub
	logger          *logrus.Logger
}

func (s *Service) UUID() string { return s.uuid }

// FindCharacteristic returns the characteristic matching uuid in any
// normalized form, or nil.
func (s *Service) FindCharacteristic(uuid string) hog.GattCharacteristic {
	for _, c := range s.characteristics {
		if hog.UUIDEqual(c.uuid, uuid) {
			return c
		}
	}
	return nil
}

// Raw returns the underlying ble.Service for registration with the stack.
func (s *Service) Raw() *ble.Service {
	return s.bleService
}

// Notify sends a report to the peer's subscribed Report characteristic.
// The payload is prefixed with the report ID so a single Report
// characteristic can carry all three report types.
func (s *Service) Notify(peer hog.Peer, reportID byte, payload []byte) error {
	return s.hub.notify(peer.Address(), append([]byte{reportID}, payload...))
}

// NewHIDService builds the HID-over-GATT service: HID Information, Report
// Map (seeded with the combined descriptor), Report (notify), HID Control
// Point, and Protocol Mode. Every readable characteristic routes through
// the interceptor so per-host strategies get first refusal on reads.
func NewHIDService(intercept ReadInterceptor, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}

	s := &Service{
		uuid:       hog.HIDServiceUUID,
		bleService: ble.NewService(ble.UUID16(0x1812)),
		hub:        newNotifyHub(logger),
		logger:     logger,
	}

	readHandler := func(c *Characteristic) ble.ReadHandlerFunc {
		return func(req ble.Request, rsp ble.ResponseWriter) {
			peer := PeerFromConn(req.Conn())
			value := c.Value()
			if intercept != nil {
				value = intercept(peer, c)
			}
			if _, err := rsp.Write(value); err != nil {
				logger.WithError(err).WithField("uuid", c.uuid).Warn("Characteristic read response failed")
			}
		}
	}

	addReadable := func(uuid16 uint16, uuid string, value []byte) *Characteristic {
		c := &Characteristic{uuid: uuid, value: value}
		c.ch = s.bleService.NewCharacteristic(ble.UUID16(uuid16))
		c.ch.HandleRead(readHandler(c))
		s.characteristics = append(s.characteristics, c)
		return c
	}

	addReadable(0x2A4A, hog.HIDInformationUUID, make([]byte, 4))
	addReadable(0x2A4B, hog.ReportMapUUID, hidreport.ReportMap())

	report := addReadable(0x2A4D, hog.ReportUUID, nil)
	report.ch.HandleNotify(ble.NotifyHandlerFunc(s.hub.serveNotify))

	protocolMode := &Characteristic{uuid: hog.ProtocolModeUUID, value: []byte{0x01}} // report protocol
	protocolMode.ch = s.bleService.NewCharacteristic(ble.UUID16(0x2A4E))
	protocolMode.ch.HandleRead(readHandler(protocolMode))
	s.characteristics = append(s.characteristics, protocolMode)

	controlPoint := &Characteristic{uuid: hog.HIDControlPointUUID}
	controlPoint.ch = s.bleService.NewCharacteristic(ble.UUID16(0x2A4C))
	controlPoint.ch.HandleWrite(ble.WriteHandlerFunc(func(req ble.Request, rsp ble.ResponseWriter) {
		// Suspend / exit-suspend commands; acknowledged but not acted on.
		logger.WithFields(logrus.Fields{
			"address": req.Conn().RemoteAddr().String(),
			"data":    req.Data(),
		}).Debug("HID Control Point write")
	}))
	s.characteristics = append(s.characteristics, controlPoint)

	return s
}
