package goble

import (
	"bytes"
	"testing"

	"github.com/srg/hogpd/internal/hog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHIDService_Shape(t *testing.T) {
	svc := NewHIDService(nil, nil)

	assert.Equal(t, hog.HIDServiceUUID, svc.UUID())
	require.Len(t, svc.Raw().Characteristics, 5)

	for _, uuid := range []string{
		hog.HIDInformationUUID,
		hog.ReportMapUUID,
		hog.ReportUUID,
		hog.ProtocolModeUUID,
		hog.HIDControlPointUUID,
	} {
		assert.NotNil(t, svc.FindCharacteristic(uuid), "missing characteristic %s", uuid)
	}
	assert.Nil(t, svc.FindCharacteristic(hog.BatteryLevelUUID))
}

func TestNewHIDService_SeededValues(t *testing.T) {
	svc := NewHIDService(nil, nil)

	info := svc.FindCharacteristic(hog.HIDInformationUUID)
	require.NotNil(t, info)
	assert.Equal(t, make([]byte, 4), info.Value())

	reportMap := svc.FindCharacteristic(hog.ReportMapUUID)
	require.NotNil(t, reportMap)
	assert.True(t, bytes.Contains(reportMap.Value(), []byte{0x05, 0x01, 0x09, 0x02}))

	protocolMode := svc.FindCharacteristic(hog.ProtocolModeUUID)
	require.NotNil(t, protocolMode)
	assert.Equal(t, []byte{0x01}, protocolMode.Value())
}

func TestCharacteristic_SetValueCopies(t *testing.T) {
	svc := NewHIDService(nil, nil)
	info := svc.FindCharacteristic(hog.HIDInformationUUID)

	source := []byte{0x11, 0x01, 0x00, 0x03}
	info.SetValue(source)
	source[3] = 0xFF

	assert.Equal(t, []byte{0x11, 0x01, 0x00, 0x03}, info.Value())
}

func TestFindCharacteristic_LongForm(t *testing.T) {
	svc := NewHIDService(nil, nil)
	assert.NotNil(t, svc.FindCharacteristic("00002A4A-0000-1000-8000-00805F9B34FB"))
}
