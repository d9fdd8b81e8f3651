package hog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceTypeString(t *testing.T) {
	assert.Equal(t, "unknown", DeviceUnknown.String())
	assert.Equal(t, "apple", DeviceApple.String())
	assert.Equal(t, "windows", DeviceWindows.String())
	assert.Equal(t, "android", DeviceAndroid.String())
	assert.Equal(t, "DeviceType(42)", DeviceType(42).String())
}

func TestParseDeviceType(t *testing.T) {
	for _, deviceType := range []DeviceType{DeviceUnknown, DeviceApple, DeviceWindows, DeviceAndroid} {
		parsed, err := ParseDeviceType(deviceType.String())
		require.NoError(t, err)
		assert.Equal(t, deviceType, parsed)
	}

	_, err := ParseDeviceType("amiga")
	assert.Error(t, err)
}
