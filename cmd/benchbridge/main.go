//go:build !rp2040

// cmd/benchbridge/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sniffbridge-go/services/bridge"
	"sniffbridge-go/services/config"
	"sniffbridge-go/services/platform"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: benchbridge <board.yaml>")
	}
	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	b, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	platform.SetRequestedBaud(b.Host.RequestBaud)

	res, err := platform.Open(b)
	if err != nil {
		log.Fatalf("platform open failed (board=%s): %v", b.Name, err)
	}
	defer res.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// SIGHUP: re-read host.request_baud
	// --------------------

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				nb, err := config.Load(cfgPath)
				if err != nil {
					log.Printf("reload failed, keeping current plan: %v", err)
					continue
				}
				platform.SetRequestedBaud(nb.Host.RequestBaud)
				log.Printf("reload: host.request_baud=%d", nb.Host.RequestBaud)
			}
		}
	}()

	// --------------------
	// Bridge loop
	// --------------------

	log.Printf("bridging %s <-> %s at %d bps (trace: %s)", b.Host.ID, b.UART.ID, b.UART.Baud, b.Diag.ID)
	eng := bridge.New(res.Ports, res.Options)
	runErr := eng.Run(ctx)

	s := eng.Stats()
	log.Printf("stopped: iterations=%d pc->dut=%d dut->pc=%d rate_changes=%d baud=%d",
		s.Iterations, s.HostToDevice, s.DeviceToHost, s.RateChanges, eng.Baud())

	if runErr != nil {
		res.Close()
		log.Fatalf("bridge failed: %v", runErr)
	}
}
