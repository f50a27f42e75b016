// ABOUTME: Entry point for the pcmcast receiver
// ABOUTME: Parses CLI flags, runs the relay, and handles shutdown
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/pcmcast/pcmcast-go/internal/app"
	"github.com/pcmcast/pcmcast-go/internal/ui"
)

var (
	bindAddr    = flag.String("bind", "0.0.0.0", "Bind address for the UDP socket")
	port        = flag.Int("port", 46000, "UDP port to listen on")
	volume      = flag.Int("volume", 100, "Playback volume (0-100)")
	useTUI      = flag.Bool("tui", false, "Show the interactive status TUI")
	advertise   = flag.Bool("advertise", false, "Advertise the receiver via mDNS")
	monitorAddr = flag.String("monitor", "", "Address for the HTTP monitor (empty: disabled)")
	name        = flag.String("name", "", "Receiver instance name (default: hostname-pcmcast)")
	logFile     = flag.String("log-file", "", "Log file path (empty: stderr only)")
)

func main() {
	flag.Parse()

	// Set up logging
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer func() { _ = f.Close() }()

		if *useTUI {
			// TUI mode: log only to file so the screen stays clean
			log.SetOutput(f)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	}

	// Determine instance name
	instanceName := *name
	if instanceName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		instanceName = fmt.Sprintf("%s-pcmcast-%s", hostname, uuid.New().String()[:8])
	}

	a := app.New(app.Config{
		BindAddress:  *bindAddr,
		Port:         *port,
		Volume:       *volume,
		InstanceName: instanceName,
		Advertise:    *advertise,
		MonitorAddr:  *monitorAddr,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start receiver: %v", err)
	}

	fmt.Printf("Listening on UDP port %d...\n", *port)

	// TUI setup
	var tuiProg *tea.Program
	var volumeCtrl *ui.VolumeControl

	if *useTUI {
		volumeCtrl = ui.NewVolumeControl()
		var err error
		tuiProg, err = ui.Run(volumeCtrl)
		if err != nil {
			a.Stop()
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go tuiProg.Run()
		go handleVolumeControl(a, volumeCtrl)
		go statsUpdateLoop(a, tuiProg)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	if volumeCtrl != nil {
		select {
		case sig := <-sigChan:
			log.Printf("Received %v signal, shutting down", sig)
		case <-volumeCtrl.Quit:
			log.Printf("Received quit signal from TUI")
		case runErr = <-a.Done():
		}
	} else {
		select {
		case sig := <-sigChan:
			log.Printf("Received %v signal, shutting down", sig)
		case runErr = <-a.Done():
		}
	}

	// Resources are released on every exit path, error or not.
	a.Stop()

	if tuiProg != nil {
		tuiProg.Quit()
	}

	if runErr != nil {
		log.Fatalf("Relay error: %v", runErr)
	}

	log.Printf("Receiver stopped")
}

// handleVolumeControl processes volume changes from the TUI.
func handleVolumeControl(a *app.App, volumeCtrl *ui.VolumeControl) {
	for vol := range volumeCtrl.Changes {
		log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
		a.SetVolume(vol.Volume)
		a.SetMuted(vol.Muted)
	}
}

// statsUpdateLoop periodically pushes relay counters to the TUI.
func statsUpdateLoop(a *app.App, tuiProg *tea.Program) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		stats := a.Stats()
		tuiProg.Send(ui.StatusMsg{
			ListenAddr:  a.ListenAddr(),
			Received:    stats.Received,
			Played:      stats.Played,
			Empty:       stats.Empty,
			BytesPlayed: stats.BytesPlayed,
		})
	}
}
