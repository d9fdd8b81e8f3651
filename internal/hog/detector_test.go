package hog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testPeer struct {
	address string
	name    string
}

func (p *testPeer) Address() string { return p.address }
func (p *testPeer) Name() string    { return p.name }

func TestDetectDeviceType(t *testing.T) {
	tests := []struct {
		name     string
		peerName string
		expected DeviceType
	}{
		{
			name:     "MacBook",
			peerName: "John's MacBook Pro",
			expected: DeviceApple,
		},
		{
			name:     "iPhone",
			peerName: "iPhone 15",
			expected: DeviceApple,
		},
		{
			name:     "iPad",
			peerName: "iPad Air",
			expected: DeviceApple,
		},
		{
			name:     "Windows desktop",
			peerName: "Office-PC-Windows11",
			expected: DeviceWindows,
		},
		{
			name:     "Generic PC",
			peerName: "GAMING-PC",
			expected: DeviceWindows,
		},
		{
			name:     "Android phone",
			peerName: "Pixel Android Device",
			expected: DeviceAndroid,
		},
		{
			name:     "Empty name",
			peerName: "",
			expected: DeviceUnknown,
		},
		{
			name:     "Unrecognized name",
			peerName: "SmartTV-Living-Room",
			expected: DeviceUnknown,
		},
		{
			name:     "Matching is case-sensitive",
			peerName: "my macbook",
			expected: DeviceUnknown,
		},
	}

	detector := NewDeviceDetector(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peer := &testPeer{address: "AA:BB:CC:DD:EE:FF", name: tt.peerName}
			assert.Equal(t, tt.expected, detector.DetectDeviceType(peer))
		})
	}
}

func TestDetectDeviceType_FirstRuleWins(t *testing.T) {
	detector := NewDeviceDetector(nil)

	// "Mac" appears before "Windows" in the rule table
	peer := &testPeer{address: "11:22:33:44:55:66", name: "Mac running Windows"}
	assert.Equal(t, DeviceApple, detector.DetectDeviceType(peer))
}
