package main

import (
	"flag"
	"log"

	"github.com/stpnv0/TurfBooker/internal/app"
	"github.com/stpnv0/TurfBooker/internal/config"
)

func main() {
	reconcileOnly := flag.Bool("reconcile", false, "fill the slot horizon, sweep expired holds and exit")
	days := flag.Int("days", 0, "horizon in days for -reconcile (default: booking.horizon_days)")
	flag.Parse()

	cfg := config.MustLoad()

	turf, err := app.New(cfg)
	if err != nil {
		log.Fatalf("turf booker init: %v", err)
	}

	if *reconcileOnly {
		// для запуска по cron без HTTP и consumer'а
		if err = turf.ReconcileOnce(*days); err != nil {
			log.Fatalf("reconcile: %v", err)
		}
		return
	}

	if err = turf.Run(); err != nil {
		log.Fatalf("turf booker run: %v", err)
	}
}
