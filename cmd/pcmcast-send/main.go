// ABOUTME: Entry point for the pcmcast sender tool
// ABOUTME: Streams a file or test tone to a receiver as raw PCM datagrams
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pcmcast/pcmcast-go/internal/discovery"
	"github.com/pcmcast/pcmcast-go/internal/sender"
)

var (
	addr      = flag.String("addr", "", "Receiver address host:port (empty: discover via mDNS)")
	audioFile = flag.String("file", "", "Audio file to stream (MP3 or FLAC). If not specified, sends a test tone")
	toneFreq  = flag.Float64("freq", 440, "Test tone frequency in Hz")
)

func main() {
	flag.Parse()

	receiverAddr := *addr
	if receiverAddr == "" {
		log.Printf("No receiver address given, browsing mDNS...")

		disc := discovery.NewManager(discovery.Config{})
		disc.Browse()

		select {
		case recv := <-disc.Receivers():
			receiverAddr = fmt.Sprintf("%s:%d", recv.Host, recv.Port)
			log.Printf("Discovered receiver at %s", receiverAddr)
		case <-time.After(10 * time.Second):
			disc.Stop()
			log.Fatalf("No receiver found after 10 seconds")
		}
		disc.Stop()
	}

	src, err := sender.NewSource(*audioFile, *toneFreq)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	s, err := sender.New(receiverAddr, src)
	if err != nil {
		log.Fatalf("Failed to create sender: %v", err)
	}
	defer s.Close()

	log.Printf("Streaming to %s (Ctrl-C to stop)", receiverAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received %v signal, stopping", sig)
		cancel()
	}()

	if err := s.Run(ctx); err != nil {
		log.Fatalf("Send error: %v", err)
	}

	log.Printf("Sender stopped")
}
