// ABOUTME: Receiver application orchestration
// ABOUTME: Wires the device, socket, relay loop, and optional discovery/monitor
package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pcmcast/pcmcast-go/internal/discovery"
	"github.com/pcmcast/pcmcast-go/internal/monitor"
	"github.com/pcmcast/pcmcast-go/internal/receiver"
	"github.com/pcmcast/pcmcast-go/internal/relay"
	"github.com/pcmcast/pcmcast-go/internal/sink"
)

// Config holds receiver configuration.
type Config struct {
	BindAddress  string
	Port         int
	Volume       int
	InstanceName string

	// Advertise enables mDNS advertisement of the bound port.
	Advertise bool

	// MonitorAddr enables the HTTP monitor when non-empty.
	MonitorAddr string
}

// App owns the receiver's resources and the relay loop goroutine. All
// resources are released exactly once through Stop, no matter how the
// loop ends.
type App struct {
	config Config

	receiver  *receiver.UDPReceiver
	device    *sink.Device
	relay     *relay.Relay
	discovery *discovery.Manager
	monitor   *monitor.Server

	ctx    context.Context
	cancel context.CancelFunc

	wg       sync.WaitGroup
	done     chan error
	stopOnce sync.Once
}

// New creates the receiver application.
func New(config Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan error, 1),
	}
}

// Start acquires the audio device and the socket, then runs the relay
// loop in the background.
func (a *App) Start() error {
	device, err := sink.Open()
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	a.device = device

	if a.config.Volume != 100 {
		a.device.SetVolume(a.config.Volume)
	}

	recv, err := receiver.Listen(a.config.BindAddress, a.config.Port)
	if err != nil {
		a.device.Close()
		return fmt.Errorf("failed to bind receiver: %w", err)
	}
	a.receiver = recv

	a.relay = relay.New(a.receiver, a.device)

	if a.config.Advertise {
		a.discovery = discovery.NewManager(discovery.Config{
			InstanceName: a.config.InstanceName,
			Port:         a.receiver.Port(),
		})
		if err := a.discovery.Advertise(); err != nil {
			log.Printf("mDNS advertisement failed: %v", err)
		}
	}

	if a.config.MonitorAddr != "" {
		a.monitor = monitor.NewServer(a.config.MonitorAddr, monitor.Info{
			InstanceID: a.config.InstanceName,
			ListenAddr: a.receiver.LocalAddr().String(),
		}, a.relay.Stats)
		if err := a.monitor.Start(); err != nil {
			log.Printf("Monitor server failed to start: %v", err)
		}
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.done <- a.relay.Run(a.ctx)
	}()

	return nil
}

// Done reports the relay loop's result: nil after a clean shutdown, the
// receiver or sink error otherwise.
func (a *App) Done() <-chan error {
	return a.done
}

// ListenAddr returns the bound socket address.
func (a *App) ListenAddr() string {
	if a.receiver == nil {
		return ""
	}
	return a.receiver.LocalAddr().String()
}

// Stats returns a snapshot of the relay counters.
func (a *App) Stats() relay.Stats {
	if a.relay == nil {
		return relay.Stats{}
	}
	return a.relay.Stats()
}

// SetVolume adjusts playback volume.
func (a *App) SetVolume(volume int) {
	if a.device != nil {
		a.device.SetVolume(volume)
	}
}

// SetMuted adjusts mute state.
func (a *App) SetMuted(muted bool) {
	if a.device != nil {
		a.device.SetMuted(muted)
	}
}

// Stop releases all resources. The socket closes first to unblock the
// loop, then the device. Safe to call more than once.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.cancel()

		if a.receiver != nil {
			a.receiver.Close()
		}

		a.wg.Wait()

		if a.device != nil {
			a.device.Close()
		}

		if a.discovery != nil {
			a.discovery.Stop()
		}

		if a.monitor != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.monitor.Stop(ctx); err != nil {
				log.Printf("Error stopping monitor: %v", err)
			}
		}
	})
}
