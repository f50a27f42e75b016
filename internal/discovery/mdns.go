// ABOUTME: mDNS discovery for pcmcast receivers
// ABOUTME: Receivers advertise _pcmcast._udp; senders browse for them
package discovery

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service receivers advertise.
const ServiceType = "_pcmcast._udp"

// Config holds discovery configuration.
type Config struct {
	InstanceName string
	Port         int
}

// Manager handles mDNS operations.
type Manager struct {
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	receivers chan *ReceiverInfo
}

// ReceiverInfo describes a discovered receiver.
type ReceiverInfo struct {
	Name string
	Host string
	Port int
}

// NewManager creates a discovery manager.
func NewManager(config Config) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
		receivers: make(chan *ReceiverInfo, 10),
	}
}

// Advertise advertises this receiver via mDNS.
func (m *Manager) Advertise() error {
	ips, err := getLocalIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		m.config.InstanceName,
		ServiceType,
		"",
		"",
		m.config.Port,
		ips,
		[]string{"format=pcm-s16le-48000-2ch"},
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	log.Printf("Advertising mDNS service: %s on port %d (type: %s)",
		m.config.InstanceName, m.config.Port, ServiceType)

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse searches for pcmcast receivers.
func (m *Manager) Browse() error {
	go m.browseLoop()
	return nil
}

// browseLoop continuously browses for receivers.
func (m *Manager) browseLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				if entry.AddrV4 == nil {
					continue
				}

				recv := &ReceiverInfo{
					Name: entry.Name,
					Host: entry.AddrV4.String(),
					Port: entry.Port,
				}

				log.Printf("Discovered receiver: %s at %s:%d", recv.Name, recv.Host, recv.Port)

				select {
				case m.receivers <- recv:
				case <-m.ctx.Done():
					return
				}
			}
		}()

		params := &mdns.QueryParam{
			Service: ServiceType,
			Domain:  "local",
			Timeout: 3,
			Entries: entries,
		}

		mdns.Query(params)
		close(entries)
	}
}

// Receivers returns the channel of discovered receivers.
func (m *Manager) Receivers() <-chan *ReceiverInfo {
	return m.receivers
}

// Stop stops the discovery manager.
func (m *Manager) Stop() {
	m.cancel()
}

// getLocalIPs returns local IP addresses.
func getLocalIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
