package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type the emulator announces itself as
	ServiceType = "_smartaudio._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// instanceName identifies this emulator instance on the network
	instanceName = "vtx-emulator"
)

// Announcer keeps an mDNS registration alive for the lifetime of the listener
type Announcer struct {
	server *zeroconf.Server
}

// Announce registers the emulator's TCP listener on the local network so test
// harnesses can discover it without configuration.
func Announce(port int) (*Announcer, error) {
	server, err := zeroconf.Register(
		instanceName,
		ServiceType,
		ServiceDomain,
		port,
		[]string{"protocol=smartaudio"},
		nil, // all network interfaces
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	return &Announcer{server: server}, nil
}

// Shutdown withdraws the mDNS registration
func (a *Announcer) Shutdown() {
	if a.server != nil {
		a.server.Shutdown()
	}
}
