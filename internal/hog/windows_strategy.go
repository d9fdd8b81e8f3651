package hog

import "github.com/sirupsen/logrus"

// WindowsStrategy shapes HID characteristics for Windows hosts. Windows
// expects the remote-wake capability to be advertised for HID peripherals
// that should survive host sleep; everything else follows the generic
// behavior.
type WindowsStrategy struct {
	logger *logrus.Logger
}

// NewWindowsStrategy creates the Windows host strategy.
func NewWindowsStrategy(logger *logrus.Logger) *WindowsStrategy {
	if logger == nil {
		logger = logrus.New()
	}
	return &WindowsStrategy{logger: logger}
}

func (s *WindowsStrategy) DeviceName() string {
	return "HOGP Remote (PC)"
}

func (s *WindowsStrategy) HIDInformation() []byte {
	return hidInformation(hidFlagRemoteWake)
}

func (s *WindowsStrategy) AdaptReportMap(reportMap []byte) []byte {
	return reportMap
}

func (s *WindowsStrategy) AdaptReport(reportID byte, report []byte) []byte {
	return report
}

func (s *WindowsStrategy) ConfigureService(service GattService) {
	applyHIDInformation(service, s.HIDInformation(), s.logger)
}

func (s *WindowsStrategy) HandleCharacteristicRead(characteristic GattCharacteristic) ([]byte, bool) {
	return nil, false
}
