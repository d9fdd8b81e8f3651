package goble

import (
	"fmt"
	"sync"

	"github.com/go-ble/ble"
	"github.com/sirupsen/logrus"
)

// notifyHub tracks the Report characteristic subscription of each
// connected central, keyed by address.
type notifyHub struct {
	mu     sync.RWMutex
	subs   map[string]ble.Notifier
	logger *logrus.Logger
}

func newNotifyHub(logger *logrus.Logger) *notifyHub {
	return &notifyHub{
		subs:   make(map[string]ble.Notifier),
		logger: logger,
	}
}

// serveNotify registers the subscriber and blocks until it unsubscribes
// or disconnects, per the go-ble notify handler contract.
func (h *notifyHub) serveNotify(req ble.Request, n ble.Notifier) {
	address := req.Conn().RemoteAddr().String()

	h.mu.Lock()
	h.subs[address] = n
	h.mu.Unlock()

	h.logger.WithField("address", address).Info("Central subscribed to reports")
	<-n.Context().Done()

	h.mu.Lock()
	delete(h.subs, address)
	h.mu.Unlock()

	h.logger.WithField("address", address).Info("Central unsubscribed from reports")
}

// notify writes data to the subscriber for address.
func (h *notifyHub) notify(address string, data []byte) error {
	h.mu.RLock()
	n, ok := h.subs[address]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no report subscription for %s", address)
	}
	if _, err := n.Write(data); err != nil {
		return fmt.Errorf("notify %s: %w", address, err)
	}
	return nil
}
