package hog

import (
	"bytes"

	"github.com/sirupsen/logrus"
)

// mouseUsageSignature is Usage Page (Generic Desktop) immediately followed
// by Usage (Mouse) in a HID report descriptor. A sliding-window scan for
// this pattern is a heuristic, not a descriptor parse: it is how we decide
// whether a report map describes a mouse without pulling in a full HID
// item grammar.
var mouseUsageSignature = []byte{0x05, 0x01, 0x09, 0x02}

// AppleStrategy shapes HID characteristics for macOS and iOS hosts. Apple
// hosts get both remote-wake and normally-connectable capabilities, a
// mouse-specific report map hook, and direct interception of HID
// Information reads so the response never depends on stored state.
type AppleStrategy struct {
	logger *logrus.Logger
}

// NewAppleStrategy creates the Apple host strategy.
func NewAppleStrategy(logger *logrus.Logger) *AppleStrategy {
	if logger == nil {
		logger = logrus.New()
	}
	return &AppleStrategy{logger: logger}
}

func (s *AppleStrategy) DeviceName() string {
	return "HOGP Remote (Mac)"
}

func (s *AppleStrategy) HIDInformation() []byte {
	return hidInformation(hidFlagRemoteWake | hidFlagNormallyConnectable)
}

// AdaptReportMap routes mouse report maps through the Apple mouse hook.
// Maps without the mouse usage signature pass through untouched, as do
// malformed maps; availability wins over strict validation here.
func (s *AppleStrategy) AdaptReportMap(reportMap []byte) []byte {
	if !bytes.Contains(reportMap, mouseUsageSignature) {
		return reportMap
	}
	s.logger.Debug("Mouse usage signature found in report map, applying Apple mouse adaptation")
	return s.adaptMouseReportMap(reportMap)
}

// adaptMouseReportMap is the hook for Apple-specific mouse descriptor
// rewrites (input-padding polarity being the known candidate). Currently
// a pass-through.
func (s *AppleStrategy) adaptMouseReportMap(reportMap []byte) []byte {
	return reportMap
}

func (s *AppleStrategy) AdaptReport(reportID byte, report []byte) []byte {
	return report
}

// ConfigureService writes the Apple HID Information value and rewrites the
// stored report map through AdaptReportMap. Either characteristic being
// absent skips that step; the service may not be fully built yet.
func (s *AppleStrategy) ConfigureService(service GattService) {
	applyHIDInformation(service, s.HIDInformation(), s.logger)

	reportMap := service.FindCharacteristic(ReportMapUUID)
	if reportMap == nil {
		s.logger.WithField("service", service.UUID()).Debug("Report Map characteristic absent, skipping")
		return
	}
	reportMap.SetValue(s.AdaptReportMap(reportMap.Value()))
}

// HandleCharacteristicRead intercepts HID Information reads and answers
// with the Apple value directly, bypassing whatever is stored. All other
// characteristics defer to the generic read path.
func (s *AppleStrategy) HandleCharacteristicRead(characteristic GattCharacteristic) ([]byte, bool) {
	if UUIDEqual(characteristic.UUID(), HIDInformationUUID) {
		return s.HIDInformation(), true
	}
	return nil, false
}
