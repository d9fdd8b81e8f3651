package hog

import (
	"sync"

	"github.com/cornelk/hashmap"
	"github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RegisteredStrategy pairs a device type with the strategy bound to it,
// in registration order. Used for status/listing surfaces.
type RegisteredStrategy struct {
	Type     DeviceType
	Strategy CompatibilityStrategy
}

// DeviceCompatibilityManager is the single source of truth for which
// CompatibilityStrategy applies to a connection. Resolution order per peer:
// cached binding, then the global override, then detector-driven lookup.
// Every registry or override mutation invalidates the whole per-address
// cache; partial invalidation would trade a full clear for a stale-entry
// bug class.
//
// All methods are safe for concurrent use. Resolutions for distinct
// addresses share a read lock and a lock-free cache, so they do not block
// each other; only mutations take the write lock.
type DeviceCompatibilityManager struct {
	logger   *logrus.Logger
	detector *DeviceDetector
	fallback CompatibilityStrategy

	mu          sync.RWMutex
	registry    *orderedmap.OrderedMap[DeviceType, CompatibilityStrategy]
	override    DeviceType
	hasOverride bool
	cache       *hashmap.Map[string, CompatibilityStrategy]
}

// NewDeviceCompatibilityManager creates a manager with the built-in
// strategies registered: generic under DeviceUnknown, plus the Apple and
// Windows variants. DeviceAndroid is intentionally left unregistered;
// Android hosts accept the generic shape, so they resolve through the
// default-strategy fallback. The generic strategy doubles as the fallback
// for any type without a registration.
func NewDeviceCompatibilityManager(detector *DeviceDetector, logger *logrus.Logger) *DeviceCompatibilityManager {
	if logger == nil {
		logger = logrus.New()
	}
	if detector == nil {
		detector = NewDeviceDetector(logger)
	}

	generic := NewGenericStrategy(logger)

	m := &DeviceCompatibilityManager{
		logger:   logger,
		detector: detector,
		fallback: generic,
		registry: orderedmap.New[DeviceType, CompatibilityStrategy](),
		cache:    hashmap.New[string, CompatibilityStrategy](),
	}

	m.registry.Set(DeviceUnknown, generic)
	m.registry.Set(DeviceApple, NewAppleStrategy(logger))
	m.registry.Set(DeviceWindows, NewWindowsStrategy(logger))

	return m
}

// GetStrategyForDevice resolves the strategy for a connected peer.
// The result is memoized per address until the next registry or override
// mutation, so repeated calls for the same peer return the identical
// strategy instance. Never returns nil.
func (m *DeviceCompatibilityManager) GetStrategyForDevice(peer Peer) CompatibilityStrategy {
	address := peer.Address()

	m.mu.RLock()
	cache := m.cache
	if strategy, ok := cache.Get(address); ok {
		m.mu.RUnlock()
		return strategy
	}
	overrideType, forced := m.override, m.hasOverride
	m.mu.RUnlock()

	var deviceType DeviceType
	if forced {
		deviceType = overrideType
	} else {
		deviceType = m.detector.DetectDeviceType(peer)
	}

	strategy := m.resolveStrategy(deviceType, forced)

	// GetOrInsert keeps concurrent resolutions for the same address from
	// caching two different instances; the first insert wins.
	actual, loaded := cache.GetOrInsert(address, strategy)
	if !loaded {
		m.logger.WithFields(logrus.Fields{
			"address":     address,
			"device_type": deviceType,
			"forced":      forced,
			"device_name": strategy.DeviceName(),
		}).Info("Bound compatibility strategy to peer")
	}
	return actual
}

// SetDeviceTypeOverride forces every subsequent resolution to the strategy
// registered for deviceType, bypassing detection, and clears all cached
// bindings. Returns the strategy now in effect (post-fallback); never nil.
func (m *DeviceCompatibilityManager) SetDeviceTypeOverride(deviceType DeviceType) CompatibilityStrategy {
	m.mu.Lock()
	m.override = deviceType
	m.hasOverride = true
	m.cache = hashmap.New[string, CompatibilityStrategy]()
	m.mu.Unlock()

	m.logger.WithField("device_type", deviceType).Info("Device type override set, cache cleared")
	return m.resolveStrategy(deviceType, true)
}

// ClearDeviceTypeOverride removes the override and clears all cached
// bindings, reverting subsequent resolutions to detector-driven behavior.
func (m *DeviceCompatibilityManager) ClearDeviceTypeOverride() {
	m.mu.Lock()
	m.hasOverride = false
	m.override = DeviceUnknown
	m.cache = hashmap.New[string, CompatibilityStrategy]()
	m.mu.Unlock()

	m.logger.Info("Device type override cleared, cache cleared")
}

// RegisterStrategy binds strategy to deviceType, replacing any existing
// registration (last registration wins) and clearing all cached bindings.
// Replacement is legal but unusual, so it is surfaced as a warning.
func (m *DeviceCompatibilityManager) RegisterStrategy(deviceType DeviceType, strategy CompatibilityStrategy) {
	m.mu.Lock()
	_, replaced := m.registry.Set(deviceType, strategy)
	m.cache = hashmap.New[string, CompatibilityStrategy]()
	m.mu.Unlock()

	if replaced {
		m.logger.WithField("device_type", deviceType).Warn("Replacing existing strategy registration")
	} else {
		m.logger.WithFields(logrus.Fields{
			"device_type": deviceType,
			"device_name": strategy.DeviceName(),
		}).Info("Registered compatibility strategy")
	}
}

// DefaultStrategy returns the strategy used when no registration covers a
// resolved device type. The GATT layer also uses it to shape the service
// before any central has connected.
func (m *DeviceCompatibilityManager) DefaultStrategy() CompatibilityStrategy {
	return m.fallback
}

// GetCurrentDeviceType returns the active override, or DeviceUnknown when
// none is set. It deliberately does not report per-connection detected
// types; there is no per-peer detection query, only per-peer strategy
// resolution.
func (m *DeviceCompatibilityManager) GetCurrentDeviceType() DeviceType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.hasOverride {
		return m.override
	}
	return DeviceUnknown
}

// Strategies returns the registered bindings in registration order.
func (m *DeviceCompatibilityManager) Strategies() []RegisteredStrategy {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]RegisteredStrategy, 0, m.registry.Len())
	for pair := m.registry.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, RegisteredStrategy{Type: pair.Key, Strategy: pair.Value})
	}
	return result
}

// resolveStrategy looks up the registry entry for deviceType, falling back
// to the default strategy when nothing is registered. forced marks
// override-driven resolutions, which log the fallback louder since an
// explicitly forced type with no registration usually means
// misconfiguration.
func (m *DeviceCompatibilityManager) resolveStrategy(deviceType DeviceType, forced bool) CompatibilityStrategy {
	m.mu.RLock()
	strategy, ok := m.registry.Get(deviceType)
	m.mu.RUnlock()

	if ok {
		return strategy
	}

	entry := m.logger.WithField("device_type", deviceType)
	if forced {
		entry.Warn("No strategy registered for overridden device type, using default")
	} else {
		entry.Info("No strategy registered for device type, using default")
	}
	return m.fallback
}
