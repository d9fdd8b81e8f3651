package hog

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// detectionRule maps a vendor name fragment to the device type it implies.
// Matching is case-sensitive; vendors are consistent about casing in the
// names that matter here ("iPhone", "MacBook", "Windows").
type detectionRule struct {
	fragment   string
	deviceType DeviceType
}

// detectionRules are evaluated in order; the first match wins.
var detectionRules = []detectionRule{
	{"Mac", DeviceApple},
	{"iPhone", DeviceApple},
	{"iPad", DeviceApple},
	{"Windows", DeviceWindows},
	{"PC", DeviceWindows},
	{"Android", DeviceAndroid},
}

// DeviceDetector classifies connected centrals by the metadata available
// at connection time, which in practice is just the peer's display name.
type DeviceDetector struct {
	logger *logrus.Logger
}

// NewDeviceDetector creates a detector. A nil logger falls back to a
// default logrus instance.
func NewDeviceDetector(logger *logrus.Logger) *DeviceDetector {
	if logger == nil {
		logger = logrus.New()
	}
	return &DeviceDetector{logger: logger}
}

// DetectDeviceType maps a peer to a DeviceType by substring-matching its
// name against known vendor fragments. It never fails: an empty or
// unrecognized name classifies as DeviceUnknown.
func (d *DeviceDetector) DetectDeviceType(peer Peer) DeviceType {
	name := peer.Name()
	if name == "" {
		d.logger.WithField("address", peer.Address()).Info("Peer has no name, classifying as unknown")
		return DeviceUnknown
	}

	for _, rule := range detectionRules {
		if strings.Contains(name, rule.fragment) {
			d.logger.WithFields(logrus.Fields{
				"address":     peer.Address(),
				"name":        name,
				"fragment":    rule.fragment,
				"device_type": rule.deviceType,
			}).Info("Classified peer by name")
			return rule.deviceType
		}
	}

	d.logger.WithFields(logrus.Fields{
		"address": peer.Address(),
		"name":    name,
	}).Info("No detection rule matched, classifying as unknown")
	return DeviceUnknown
}
