package goble

import "github.com/go-ble/ble"

// ConnPeer is a hog.Peer backed by connection metadata. The name is empty
// unless the central exposed one; classification degrades to the generic
// strategy in that case.
type ConnPeer struct {
	address string
	name    string
}

func (p *ConnPeer) Address() string { return p.address }
func (p *ConnPeer) Name() string    { return p.name }

// NewPeer creates a peer with a known address and name.
func NewPeer(address, name string) *ConnPeer {
	return &ConnPeer{address: address, name: name}
}

// PeerFromConn derives a peer from a live connection. go-ble does not
// surface the central's GAP name on the peripheral side, so the name is
// left empty.
func PeerFromConn(conn ble.Conn) *ConnPeer {
	return &ConnPeer{address: conn.RemoteAddr().String()}
}
