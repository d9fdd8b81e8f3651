// Package peripheral drives a HID-over-GATT peripheral: it owns the
// connection lifecycle around the compatibility manager and turns
// key/mouse/media actions into adapted input reports.
package peripheral

import (
	"errors"
	"fmt"

	"github.com/cornelk/hashmap"
	"github.com/sirupsen/logrus"
	"github.com/srg/hogpd/internal/hidreport"
	"github.com/srg/hogpd/internal/hog"
)

// Notifier delivers an input report to one connected central. Implemented
// by the GATT adapter.
type Notifier interface {
	Notify(peer hog.Peer, reportID byte, payload []byte) error
}

// Peripheral wires the compatibility manager into the GATT service at the
// three integration points: service configuration, characteristic reads,
// and outbound report transmission.
type Peripheral struct {
	logger   *logrus.Logger
	manager  *hog.DeviceCompatibilityManager
	service  hog.GattService
	notifier Notifier
	peers    *hashmap.Map[string, hog.Peer]
}

// New creates a peripheral around an existing manager. A nil logger falls
// back to a default logrus instance.
func New(manager *hog.DeviceCompatibilityManager, logger *logrus.Logger) *Peripheral {
	if logger == nil {
		logger = logrus.New()
	}
	return &Peripheral{
		logger:  logger,
		manager: manager,
		peers:   hashmap.New[string, hog.Peer](),
	}
}

// Manager exposes the compatibility manager for override control.
func (p *Peripheral) Manager() *hog.DeviceCompatibilityManager {
	return p.manager
}

// AttachService binds the built GATT service and its notifier, then shapes
// the service with the default strategy so it is presentable before any
// central connects. Must be called before advertising.
func (p *Peripheral) AttachService(service hog.GattService, notifier Notifier) {
	p.service = service
	p.notifier = notifier
	p.manager.DefaultStrategy().ConfigureService(service)
}

// HandleConnect resolves the compatibility strategy for a newly connected
// central and reconfigures the service for it. Returns the strategy in
// effect for the connection; never nil.
func (p *Peripheral) HandleConnect(peer hog.Peer) hog.CompatibilityStrategy {
	strategy := p.manager.GetStrategyForDevice(peer)
	if p.service != nil {
		strategy.ConfigureService(p.service)
	}
	p.peers.Set(peer.Address(), peer)

	p.logger.WithFields(logrus.Fields{
		"address":     peer.Address(),
		"name":        peer.Name(),
		"device_name": strategy.DeviceName(),
	}).Info("Central connected")
	return strategy
}

// Observe registers a peer lazily on first contact, for transports that
// do not surface explicit connection events. The first sighting behaves
// like HandleConnect; later calls are no-ops.
func (p *Peripheral) Observe(peer hog.Peer) {
	if _, loaded := p.peers.GetOrInsert(peer.Address(), peer); loaded {
		return
	}
	strategy := p.manager.GetStrategyForDevice(peer)
	if p.service != nil {
		strategy.ConfigureService(p.service)
	}
	p.logger.WithFields(logrus.Fields{
		"address":     peer.Address(),
		"device_name": strategy.DeviceName(),
	}).Info("Central observed")
}

// HandleDisconnect drops the peer from the connected set.
func (p *Peripheral) HandleDisconnect(peer hog.Peer) {
	p.peers.Del(peer.Address())
	p.logger.WithField("address", peer.Address()).Info("Central disconnected")
}

// HandleCharacteristicRead answers a read request from peer. The per-host
// strategy gets first refusal; unhandled reads fall back to the stored
// characteristic value.
func (p *Peripheral) HandleCharacteristicRead(peer hog.Peer, characteristic hog.GattCharacteristic) []byte {
	strategy := p.manager.GetStrategyForDevice(peer)
	if value, handled := strategy.HandleCharacteristicRead(characteristic); handled {
		return value
	}
	return characteristic.Value()
}

// SendReport adapts and transmits an input report to every connected
// central. Adaptation is per peer since concurrently connected hosts may
// be bound to different strategies. Delivery failures are joined, not
// short-circuited; one deaf central must not mute the rest.
func (p *Peripheral) SendReport(reportID byte, payload []byte) error {
	if p.notifier == nil {
		return errors.New("no notifier attached")
	}

	var errs []error
	p.peers.Range(func(address string, peer hog.Peer) bool {
		strategy := p.manager.GetStrategyForDevice(peer)
		adapted := strategy.AdaptReport(reportID, payload)
		if err := p.notifier.Notify(peer, reportID, adapted); err != nil {
			p.logger.WithError(err).WithField("address", address).Debug("Report delivery failed")
			errs = append(errs, err)
		}
		return true
	})
	return errors.Join(errs...)
}

// ConnectedPeers returns a snapshot of the currently connected centrals.
func (p *Peripheral) ConnectedPeers() []hog.Peer {
	peers := make([]hog.Peer, 0, p.peers.Len())
	p.peers.Range(func(_ string, peer hog.Peer) bool {
		peers = append(peers, peer)
		return true
	})
	return peers
}

// PressKeys sends a keyboard report holding the given modifiers and up to
// six keys down.
func (p *Peripheral) PressKeys(modifiers byte, keys ...byte) error {
	if len(keys) > 6 {
		return fmt.Errorf("keyboard report holds at most 6 keys, got %d", len(keys))
	}
	report := hidreport.KeyboardReport{Modifiers: modifiers}
	copy(report.Keys[:], keys)
	return p.SendReport(hidreport.ReportIDKeyboard, report.Bytes())
}

// ReleaseKeys sends an empty keyboard report, releasing everything.
func (p *Peripheral) ReleaseKeys() error {
	return p.SendReport(hidreport.ReportIDKeyboard, hidreport.KeyboardReport{}.Bytes())
}

// TypeKey presses and releases a single key.
func (p *Peripheral) TypeKey(modifiers, key byte) error {
	if err := p.PressKeys(modifiers, key); err != nil {
		return err
	}
	return p.ReleaseKeys()
}

// MoveMouse sends a relative pointer motion report.
func (p *Peripheral) MoveMouse(dx, dy int8) error {
	return p.SendReport(hidreport.ReportIDMouse, hidreport.MouseReport{DX: dx, DY: dy}.Bytes())
}

// Scroll sends a wheel motion report.
func (p *Peripheral) Scroll(delta int8) error {
	return p.SendReport(hidreport.ReportIDMouse, hidreport.MouseReport{Wheel: delta}.Bytes())
}

// Click presses and releases the given mouse buttons.
func (p *Peripheral) Click(buttons byte) error {
	if err := p.SendReport(hidreport.ReportIDMouse, hidreport.MouseReport{Buttons: buttons}.Bytes()); err != nil {
		return err
	}
	return p.SendReport(hidreport.ReportIDMouse, hidreport.MouseReport{}.Bytes())
}

// TapConsumer sends a consumer-control usage followed by its release.
func (p *Peripheral) TapConsumer(usage uint16) error {
	if err := p.SendReport(hidreport.ReportIDConsumer, hidreport.ConsumerReport(usage)); err != nil {
		return err
	}
	return p.SendReport(hidreport.ReportIDConsumer, hidreport.ConsumerReport(0))
}

// PlayPause toggles media playback on the connected hosts.
func (p *Peripheral) PlayPause() error {
	return p.TapConsumer(hidreport.UsagePlayPause)
}
