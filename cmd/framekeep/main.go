package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/framekeep/internal/config"
	"github.com/1broseidon/framekeep/internal/restore"
	"github.com/1broseidon/framekeep/internal/snapshot"
	"github.com/1broseidon/framekeep/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: framekeep daemon")
			os.Exit(2)
		}
		runDaemon()
	case "capture":
		os.Exit(runCapture())
	case "show":
		os.Exit(runShow())
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: framekeep <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon     Restore saved frames, then capture on exit (foreground)")
	fmt.Fprintln(w, "  capture    Capture the current windows once and exit")
	fmt.Fprintln(w, "  show       Print the saved frame snapshots")
	fmt.Fprintln(w, "  help       Show this help")
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	host := x11.NewHost(conn, x11.HostOptions{
		FrameCommand: cfg.FrameCommand,
		SpawnTimeout: cfg.SpawnTimeout,
	})
	store := &snapshot.Store{Path: cfg.SnapshotPath, Tracked: cfg.TrackedKeys}
	coord := restore.NewCoordinator(host, store, restore.Options{
		Capture:        cfg.Capture,
		ApplyPrimary:   cfg.ApplyPrimary,
		ApplySecondary: cfg.ApplySecondary,
		TrackedKeys:    cfg.TrackedKeys,
		Logger:         logger,
	})

	// Startup phase: merge the primary snapshot into the initial-window
	// config before any window maps.
	coord.ApplyPrimary()

	deregister, err := host.OnWindowCreated(coord.HandleWindowCreated)
	if err != nil {
		logger.Warn("could not watch for new windows; secondary frames will not be recreated",
			"error", err)
	} else {
		coord.SetDeregister(deregister)
	}

	// Exit phase: capture current window state, then shut down. Capture
	// failures are logged inside the coordinator and never delay exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down framekeep daemon")
		coord.Capture()
		os.Exit(0)
	}()

	logger.Info("framekeep daemon started",
		"snapshot_path", cfg.SnapshotPath, "tracked_keys", cfg.TrackedKeys)
	conn.EventLoop()
}

func runCapture() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Headless sessions skip capture entirely; that is a precondition, not
	// an error.
	if !x11.GraphicalSession() {
		fmt.Println("Not a graphical session; nothing captured.")
		return 0
	}
	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Printf("Display unavailable (%v); nothing captured.\n", err)
		return 0
	}
	defer conn.Close()

	host := x11.NewHost(conn, x11.HostOptions{SpawnTimeout: cfg.SpawnTimeout})
	store := &snapshot.Store{Path: cfg.SnapshotPath, Tracked: cfg.TrackedKeys}
	coord := restore.NewCoordinator(host, store, restore.Options{
		Capture:     true,
		TrackedKeys: cfg.TrackedKeys,
	})

	if !coord.Capture() {
		fmt.Fprintln(os.Stderr, "Capture failed; see log output.")
		return 1
	}
	fmt.Printf("Captured frame snapshots to %s\n", cfg.SnapshotPath)
	return 0
}

func runShow() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	store := &snapshot.Store{Path: cfg.SnapshotPath, Tracked: cfg.TrackedKeys}
	seq, err := store.Load()
	if errors.Is(err, snapshot.ErrNotFound) {
		fmt.Println("No saved frame snapshots.")
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load frame snapshots: %v\n", err)
		return 1
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		data, err := json.Marshal(seq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode frame snapshots: %v\n", err)
			return 1
		}
		os.Stdout.Write(append(data, '\n'))
		return 0
	}

	for i, snap := range seq {
		role := "secondary"
		if i == 0 {
			role = "primary"
		}
		fmt.Printf("frame %d (%s):", i+1, role)
		for p := snap.Oldest(); p != nil; p = p.Next() {
			fmt.Printf(" %s=%s", p.Key, p.Value)
		}
		fmt.Println()
	}
	if len(seq) == 0 {
		fmt.Println("Saved snapshot file is empty.")
	}
	return 0
}
