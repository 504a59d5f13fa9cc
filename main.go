//go:build rp2040

package main

import (
	"context"
	"strings"
	"time"

	"sniffbridge-go/services/bridge"
	"sniffbridge-go/services/config"
	"sniffbridge-go/services/platform"
)

// boardName selects the compiled-in resource plan.
// Override with -ldflags "-X main.boardName=rp2040-zero".
var boardName = "pico"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[bridge] boot board=" + boardName)

	b, err := config.Lookup(boardName)
	if err != nil {
		println("[bridge] known boards: " + strings.Join(config.Names(), ", "))
		halt(err)
	}
	res, err := platform.Open(&b)
	if err != nil {
		halt(err)
	}

	eng := bridge.New(res.Ports, res.Options)
	if err := eng.Run(context.Background()); err != nil {
		halt(err)
	}
}

// halt reports a fatal error and parks the core. Nothing is retried.
func halt(err error) {
	println("[bridge] fatal:", err.Error())
	for {
		time.Sleep(time.Hour)
	}
}
