package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-ble/ble"
	"github.com/spf13/cobra"
	"github.com/srg/hogpd/internal/hog"
	"github.com/srg/hogpd/internal/hog/goble"
	"github.com/srg/hogpd/peripheral"
	"github.com/srg/hogpd/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Advertise the HID peripheral",
	Long: `Build the HID-over-GATT service, start advertising, and serve
connecting centrals until interrupted.

Each central is classified by platform on first contact and the HID
characteristics are shaped for it. Use --force-device-type to bypass
classification entirely.`,
	RunE: runServe,
}

var (
	serveConfigPath string
	serveName       string
	serveForceType  string
	serveDuration   time.Duration
)

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to YAML config file")
	serveCmd.Flags().StringVarP(&serveName, "name", "n", "", "Advertised device name (default: active strategy's name)")
	serveCmd.Flags().StringVarP(&serveForceType, "force-device-type", "t", "", "Force a device type (unknown, apple, windows, android)")
	serveCmd.Flags().DurationVarP(&serveDuration, "duration", "d", 0, "Advertising duration (0 for until interrupted)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(serveConfigPath)
	if err != nil {
		return err
	}
	if serveName != "" {
		cfg.DeviceName = serveName
	}
	if serveForceType != "" {
		cfg.ForceDeviceType = serveForceType
	}
	if serveDuration > 0 {
		cfg.AdvertiseFor = config.Duration(serveDuration)
	}

	logger, err := configureLogger(cmd, cfg)
	if err != nil {
		return err
	}

	manager := hog.NewDeviceCompatibilityManager(hog.NewDeviceDetector(logger), logger)
	periph := peripheral.New(manager, logger)

	active := manager.DefaultStrategy()
	if cfg.ForceDeviceType != "" {
		deviceType, err := hog.ParseDeviceType(cfg.ForceDeviceType)
		if err != nil {
			return err
		}
		active = manager.SetDeviceTypeOverride(deviceType)
		logger.WithField("device_type", deviceType).Info("Device type detection bypassed")
	}

	svc := goble.NewHIDService(func(peer hog.Peer, characteristic hog.GattCharacteristic) []byte {
		periph.Observe(peer)
		return periph.HandleCharacteristicRead(peer, characteristic)
	}, logger)
	periph.AttachService(svc, svc)

	dev, err := goble.DeviceFactory()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAdapterUnavailable, err)
	}
	ble.SetDefaultDevice(dev)
	defer func() { _ = dev.Stop() }()

	if err := ble.AddService(svc.Raw()); err != nil {
		return fmt.Errorf("failed to register HID service: %w", err)
	}

	name := cfg.DeviceName
	if name == "" {
		name = active.DeviceName()
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if d := cfg.AdvertiseFor.Std(); d > 0 {
		ctx, cancel = context.WithTimeout(ctx, d)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	ctx = ble.WithSigHandler(ctx, cancel)

	logger.WithField("name", name).Info("Advertising HID service")
	err = ble.AdvertiseNameAndServices(ctx, name, ble.UUID16(0x1812))
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("advertising failed: %w", err)
	}
	return nil
}
