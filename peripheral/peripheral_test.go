package peripheral

import (
	"errors"
	"testing"

	"github.com/srg/hogpd/internal/hidreport"
	"github.com/srg/hogpd/internal/hog"
	"github.com/srg/hogpd/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentReport struct {
	address  string
	reportID byte
	payload  []byte
}

// recordingNotifier captures every delivered report.
type recordingNotifier struct {
	sent []sentReport
	fail map[string]error
}

func (n *recordingNotifier) Notify(peer hog.Peer, reportID byte, payload []byte) error {
	if err, ok := n.fail[peer.Address()]; ok {
		return err
	}
	n.sent = append(n.sent, sentReport{address: peer.Address(), reportID: reportID, payload: payload})
	return nil
}

func newTestPeripheral(t *testing.T) (*Peripheral, *testutils.FakeService, *recordingNotifier) {
	t.Helper()
	manager := hog.NewDeviceCompatibilityManager(nil, nil)
	p := New(manager, nil)

	svc := testutils.NewHIDService()
	notifier := &recordingNotifier{fail: map[string]error{}}
	p.AttachService(svc, notifier)
	return p, svc, notifier
}

func TestAttachService_AppliesDefaultShape(t *testing.T) {
	_, svc, _ := newTestPeripheral(t)

	info := svc.FindCharacteristic(hog.HIDInformationUUID)
	require.NotNil(t, info)
	assert.Equal(t, []byte{0x11, 0x01, 0x00, 0x01}, info.Value())
}

func TestHandleConnect_ReconfiguresForHost(t *testing.T) {
	p, svc, _ := newTestPeripheral(t)

	strategy := p.HandleConnect(testutils.NewPeer("AA:BB:CC:DD:EE:FF", "Office-PC-Windows11"))
	require.NotNil(t, strategy)

	info := svc.FindCharacteristic(hog.HIDInformationUUID)
	assert.Equal(t, []byte{0x11, 0x01, 0x00, 0x02}, info.Value())
	assert.Len(t, p.ConnectedPeers(), 1)
}

func TestHandleDisconnect_StopsDelivery(t *testing.T) {
	p, _, notifier := newTestPeripheral(t)
	peer := testutils.NewPeer("AA:BB:CC:DD:EE:FF", "iPhone 15")

	p.HandleConnect(peer)
	require.NoError(t, p.MoveMouse(1, 1))
	require.Len(t, notifier.sent, 1)

	p.HandleDisconnect(peer)
	assert.Empty(t, p.ConnectedPeers())

	require.NoError(t, p.MoveMouse(1, 1))
	assert.Len(t, notifier.sent, 1, "no delivery after disconnect")
}

func TestHandleCharacteristicRead(t *testing.T) {
	p, svc, _ := newTestPeripheral(t)

	applePeer := testutils.NewPeer("AA:AA:AA:AA:AA:AA", "MacBook Pro")
	otherPeer := testutils.NewPeer("BB:BB:BB:BB:BB:BB", "Pixel Android Device")
	p.HandleConnect(applePeer)
	p.HandleConnect(otherPeer)

	info := svc.FindCharacteristic(hog.HIDInformationUUID)
	require.NotNil(t, info)
	info.SetValue([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	// Apple intercepts HID Information reads, bypassing the stored value
	assert.Equal(t, []byte{0x11, 0x01, 0x00, 0x03}, p.HandleCharacteristicRead(applePeer, info))
	// Everyone else gets the stored value
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, p.HandleCharacteristicRead(otherPeer, info))
}

func TestSendReport_AdaptsPerPeer(t *testing.T) {
	p, _, notifier := newTestPeripheral(t)

	p.HandleConnect(testutils.NewPeer("AA:AA:AA:AA:AA:AA", "MacBook Pro"))
	p.HandleConnect(testutils.NewPeer("BB:BB:BB:BB:BB:BB", "Office-PC-Windows11"))

	payload := hidreport.MouseReport{DX: 10, DY: -3}.Bytes()
	require.NoError(t, p.SendReport(hidreport.ReportIDMouse, payload))

	require.Len(t, notifier.sent, 2)
	for _, sent := range notifier.sent {
		assert.Equal(t, hidreport.ReportIDMouse, sent.reportID)
		// All current strategies adapt reports as identity
		assert.Equal(t, payload, sent.payload)
	}
}

func TestSendReport_JoinsDeliveryFailures(t *testing.T) {
	p, _, notifier := newTestPeripheral(t)

	p.HandleConnect(testutils.NewPeer("AA:AA:AA:AA:AA:AA", "MacBook Pro"))
	p.HandleConnect(testutils.NewPeer("BB:BB:BB:BB:BB:BB", "Office-PC-Windows11"))
	failure := errors.New("link lost")
	notifier.fail["AA:AA:AA:AA:AA:AA"] = failure

	err := p.SendReport(hidreport.ReportIDKeyboard, hidreport.KeyboardReport{}.Bytes())
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	// The healthy central still got its report
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "BB:BB:BB:BB:BB:BB", notifier.sent[0].address)
}

func TestSendReport_NoNotifier(t *testing.T) {
	p := New(hog.NewDeviceCompatibilityManager(nil, nil), nil)
	assert.Error(t, p.SendReport(hidreport.ReportIDMouse, nil))
}

func TestKeyboardSenders(t *testing.T) {
	p, _, notifier := newTestPeripheral(t)
	p.HandleConnect(testutils.NewPeer("AA:BB:CC:DD:EE:FF", "iPhone 15"))

	t.Run("TypeKey sends press then release", func(t *testing.T) {
		notifier.sent = nil
		require.NoError(t, p.TypeKey(hidreport.ModLeftShift, hidreport.KeyA))

		require.Len(t, notifier.sent, 2)
		press := notifier.sent[0]
		assert.Equal(t, hidreport.ReportIDKeyboard, press.reportID)
		assert.Equal(t, hidreport.ModLeftShift, press.payload[0])
		assert.Equal(t, hidreport.KeyA, press.payload[2])
		assert.Equal(t, make([]byte, 8), notifier.sent[1].payload)
	})

	t.Run("PressKeys rejects more than six keys", func(t *testing.T) {
		err := p.PressKeys(0, 1, 2, 3, 4, 5, 6, 7)
		assert.Error(t, err)
	})
}

func TestMediaSenders(t *testing.T) {
	p, _, notifier := newTestPeripheral(t)
	p.HandleConnect(testutils.NewPeer("AA:BB:CC:DD:EE:FF", "Pixel Android Device"))

	require.NoError(t, p.PlayPause())

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, hidreport.ConsumerReport(hidreport.UsagePlayPause), notifier.sent[0].payload)
	assert.Equal(t, hidreport.ConsumerReport(0), notifier.sent[1].payload)
}

func TestOverrideAffectsConnectedResolution(t *testing.T) {
	p, svc, _ := newTestPeripheral(t)
	peer := testutils.NewPeer("AA:BB:CC:DD:EE:FF", "iPhone 15")
	p.HandleConnect(peer)

	info := svc.FindCharacteristic(hog.HIDInformationUUID)
	info.SetValue([]byte{0xAA, 0xBB, 0xCC, 0xDD})

	// Detection bound the peer to Apple, which intercepts the read
	assert.Equal(t, []byte{0x11, 0x01, 0x00, 0x03}, p.HandleCharacteristicRead(peer, info))

	// The override clears the cached binding; Windows does not intercept,
	// so the stored value comes back
	p.Manager().SetDeviceTypeOverride(hog.DeviceWindows)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, p.HandleCharacteristicRead(peer, info))
}

func TestObserve_RegistersOnce(t *testing.T) {
	p, svc, notifier := newTestPeripheral(t)
	peer := testutils.NewPeer("AA:BB:CC:DD:EE:FF", "Office-PC-Windows11")

	p.Observe(peer)
	p.Observe(peer)
	assert.Len(t, p.ConnectedPeers(), 1)

	info := svc.FindCharacteristic(hog.HIDInformationUUID)
	assert.Equal(t, []byte{0x11, 0x01, 0x00, 0x02}, info.Value())

	require.NoError(t, p.Scroll(-2))
	require.Len(t, notifier.sent, 1)
}
