package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/stempeluhr/timeclock/internal/badge"
	"github.com/stempeluhr/timeclock/internal/config"
	"github.com/stempeluhr/timeclock/internal/db"
	"github.com/stempeluhr/timeclock/internal/timeclock/service"
	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	sqlitestore "github.com/stempeluhr/timeclock/internal/timeclock/store/sqlite"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "timeclock-kiosk ", log.LstdFlags|log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	writer := db.NewWorker(conn)
	defer writer.Close()

	employees := sqlitestore.NewEmployeeStore(conn, writer)
	events := sqlitestore.NewEventStore(conn, writer)

	reconciler := service.NewReconciler(events, logger)
	locks := service.NewLockRegistry()
	clockSvc := service.NewClockService(employees, events, reconciler, locks, logger)

	reader := badge.NewLineReader(os.Stdin)
	indicator := badge.NewLogIndicator(logger)
	debouncer := badge.NewDebouncer(cfg.ScanDebounce)

	logger.Printf("kiosk ready (db=%s, debounce=%s)", cfg.DBPath, cfg.ScanDebounce)

	for {
		scan, err := reader.Read(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			break
		}
		if err != nil {
			logger.Printf("badge read: %v", err)
			break
		}

		if !debouncer.Allow(scan.Tag, scan.At) {
			logger.Printf("ignoring duplicate scan for %s", scan.Tag)
			continue
		}

		_, err = clockSvc.ClockByBadge(ctx, scan.Tag)
		switch {
		case errors.Is(err, store.ErrEmployeeNotFound):
			indicator.Error()
			logger.Printf("unknown badge: %s", scan.Tag)
		case err != nil:
			indicator.Error()
			logger.Printf("clock action failed: %v", err)
		default:
			indicator.Success()
		}
	}

	logger.Printf("kiosk shutting down")
}
