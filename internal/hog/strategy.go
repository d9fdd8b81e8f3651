package hog

import (
	"github.com/sirupsen/logrus"
)

// HID Information capability flags (byte 3 of the characteristic value).
const (
	hidFlagNormallyConnectable byte = 0x01
	hidFlagRemoteWake          byte = 0x02
)

// hidBCDVersion is bcdHID 1.11 in little-endian order.
var hidBCDVersion = [2]byte{0x11, 0x01}

// CompatibilityStrategy encapsulates every host-specific decision about how
// HID protocol artifacts are presented to a connected central. Strategies
// are stateless policy objects: constructed once at startup, safe for
// concurrent use, and carrying no per-connection state.
type CompatibilityStrategy interface {
	// DeviceName returns the name advertised to this class of host.
	DeviceName() string

	// HIDInformation returns the 4-byte HID Information characteristic
	// value: bcdHID (little-endian), country code, capability flags.
	HIDInformation() []byte

	// AdaptReportMap transforms a HID report descriptor before it is
	// exposed through the Report Map characteristic.
	AdaptReportMap(reportMap []byte) []byte

	// AdaptReport transforms an outbound input report just before
	// transmission. reportID identifies which report is being sent.
	AdaptReport(reportID byte, report []byte) []byte

	// ConfigureService patches a live GATT service's characteristic
	// values for this host class. Missing characteristics are skipped;
	// the service may not be fully built yet.
	ConfigureService(service GattService)

	// HandleCharacteristicRead optionally intercepts a characteristic
	// read. It returns the response bytes and true when handled, or
	// (nil, false) to defer to the stored characteristic value.
	HandleCharacteristicRead(characteristic GattCharacteristic) ([]byte, bool)
}

// hidInformation assembles the 4-byte HID Information value for the given
// capability flags. The country code is always 0 (not localized).
func hidInformation(flags byte) []byte {
	return []byte{hidBCDVersion[0], hidBCDVersion[1], 0x00, flags}
}

// applyHIDInformation writes info onto the HID Information characteristic
// of service, skipping silently when the characteristic is absent.
func applyHIDInformation(service GattService, info []byte, logger *logrus.Logger) {
	characteristic := service.FindCharacteristic(HIDInformationUUID)
	if characteristic == nil {
		logger.WithField("service", service.UUID()).Debug("HID Information characteristic absent, skipping")
		return
	}
	characteristic.SetValue(info)
}

// GenericStrategy is the default host policy: no report-map rewriting, no
// read interception, and a HID Information value advertising only the
// normally-connectable capability.
type GenericStrategy struct {
	logger *logrus.Logger
}

// NewGenericStrategy creates the default strategy.
func NewGenericStrategy(logger *logrus.Logger) *GenericStrategy {
	if logger == nil {
		logger = logrus.New()
	}
	return &GenericStrategy{logger: logger}
}

func (s *GenericStrategy) DeviceName() string {
	return "HOGP Remote"
}

func (s *GenericStrategy) HIDInformation() []byte {
	return hidInformation(hidFlagNormallyConnectable)
}

func (s *GenericStrategy) AdaptReportMap(reportMap []byte) []byte {
	return reportMap
}

func (s *GenericStrategy) AdaptReport(reportID byte, report []byte) []byte {
	return report
}

func (s *GenericStrategy) ConfigureService(service GattService) {
	applyHIDInformation(service, s.HIDInformation(), s.logger)
}

func (s *GenericStrategy) HandleCharacteristicRead(characteristic GattCharacteristic) ([]byte, bool) {
	return nil, false
}
