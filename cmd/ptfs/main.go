package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"ptfs/internal/config"
	"ptfs/internal/fs"
	"ptfs/internal/host"
	"ptfs/internal/logging"
	"ptfs/internal/mount"

	"golang.org/x/sys/unix"
)

var (
	logger = logging.GetLogger()
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Error("%v", err)
		os.Exit(2)
	}

	// Configure logging based on flags
	switch {
	case cfg.Trace:
		logger.SetLevel(logging.LevelTrace)
	case cfg.Verbose:
		logger.SetLevel(logging.LevelDebug)
	}

	logger.Info("Starting ptfs...")
	logger.Debug("Root: %s", cfg.Root)
	logger.Debug("Mount point: %s", cfg.MountPoint)
	logger.Debug("Mount options: %v", cfg.Options)

	mountOpts, err := cfg.MountOptions()
	if err != nil {
		logger.Error("Invalid mount options: %v", err)
		os.Exit(2)
	}

	// Files and directories are created with exactly the mode the caller asked for.
	unix.Umask(0)

	d, err := fs.NewDispatcher(fs.Options{
		Root:               cfg.Root,
		MaxPathLen:         cfg.MaxPathLen,
		RootSymlinkTargets: cfg.RootSymlinkTargets,
	}, host.OS())
	if err != nil {
		logger.Error("Failed to create dispatcher: %v", err)
		os.Exit(1)
	}

	mfs := mount.New(d, mount.Options{
		AttrValid:      cfg.AttrValid,
		DirectIO:       cfg.DirectIO,
		Debug:          cfg.Trace,
		WritebackCache: cfg.WritebackCache(),
	})

	logger.Debug("Setting up signal handlers...")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := mfs.Mount(cfg.MountPoint, mountOpts...); err != nil {
		logger.Error("Mount failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Filesystem mounted and ready")

	go func() {
		sig := <-sigChan
		logger.Info("Received signal %v", sig)
		if err := mfs.Unmount(cfg.MountPoint); err != nil {
			logger.Error("Unmount error: %v", err)
		}
	}()

	if err := mfs.Wait(); err != nil {
		logger.Error("FUSE server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Clean shutdown complete")
}
