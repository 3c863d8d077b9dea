// Package config parses the ptfs command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bazil.org/fuse"
)

// DefaultAttrValid is how long the kernel caches attributes unless told otherwise.
const DefaultAttrValid = time.Second

// Config holds everything needed to mount a pass-through tree.
type Config struct {
	Root       string
	MountPoint string
	// Options are the raw -o mount options, split on commas.
	Options []string

	Verbose            bool
	Trace              bool
	MaxPathLen         int
	RootSymlinkTargets bool
	DirectIO           bool
	AttrValid          time.Duration
}

// optionList collects repeated -o flags.
type optionList []string

func (o *optionList) String() string {
	return strings.Join(*o, ",")
}

func (o *optionList) Set(value string) error {
	for _, opt := range strings.Split(value, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			*o = append(*o, opt)
		}
	}
	return nil
}

// Parse reads the flags and the ROOT and MOUNTPOINT arguments. Usage and
// flag errors are written to output. ROOT is resolved to an absolute path
// without symlinks and must name a directory.
func Parse(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	var opts optionList

	fset := flag.NewFlagSet("ptfs", flag.ContinueOnError)
	fset.SetOutput(output)
	fset.Var(&opts, "o", "Mount options, comma separated (allow_other, default_permissions, ro, nonempty, async_read, writeback_cache, fsname=, subtype=, max_readahead=)")
	fset.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	fset.BoolVar(&cfg.Trace, "trace", false, "Log every operation and FUSE message")
	fset.IntVar(&cfg.MaxPathLen, "max-path-len", 0, "Longest real path accepted, 0 for PATH_MAX")
	fset.BoolVar(&cfg.RootSymlinkTargets, "root-symlink-targets", false, "Prefix new symlink targets with the root directory")
	fset.BoolVar(&cfg.DirectIO, "direct-io", false, "Bypass the kernel page cache for opened files")
	fset.DurationVar(&cfg.AttrValid, "attr-valid", DefaultAttrValid, "How long the kernel may cache attributes")
	fset.Usage = func() {
		fmt.Fprintf(fset.Output(), "Usage: ptfs [flags] ROOT MOUNTPOINT\n")
		fset.PrintDefaults()
	}

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() != 2 {
		fset.Usage()
		return nil, errors.New("expected ROOT and MOUNTPOINT arguments")
	}
	if cfg.MaxPathLen < 0 {
		return nil, fmt.Errorf("invalid -max-path-len %d", cfg.MaxPathLen)
	}

	root, err := resolveRoot(fset.Arg(0))
	if err != nil {
		return nil, err
	}
	cfg.Root = root
	cfg.MountPoint = filepath.Clean(fset.Arg(1))
	cfg.Options = opts

	if _, err := cfg.MountOptions(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", path, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("checking root %q: %w", resolved, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %q is not a directory", resolved)
	}
	return resolved, nil
}

// WritebackCache reports whether the writeback_cache mount option is set.
func (c *Config) WritebackCache() bool {
	for _, opt := range c.Options {
		if opt == "writeback_cache" {
			return true
		}
	}
	return false
}

// MountOptions translates the -o options into bazil.org/fuse mount options.
// The file system is named "ptfs" unless fsname or subtype override it, and
// flock requests are always forwarded so locks land on the real files.
func (c *Config) MountOptions() ([]fuse.MountOption, error) {
	fsName, subtype := "ptfs", "ptfs"
	var mountOpts []fuse.MountOption

	for _, opt := range c.Options {
		key, value, hasValue := strings.Cut(opt, "=")
		switch key {
		case "allow_other":
			mountOpts = append(mountOpts, fuse.AllowOther())
		case "default_permissions":
			mountOpts = append(mountOpts, fuse.DefaultPermissions())
		case "ro":
			mountOpts = append(mountOpts, fuse.ReadOnly())
		case "nonempty":
			mountOpts = append(mountOpts, fuse.AllowNonEmptyMount())
		case "async_read":
			mountOpts = append(mountOpts, fuse.AsyncRead())
		case "writeback_cache":
			mountOpts = append(mountOpts, fuse.WritebackCache())
		case "fsname":
			if !hasValue || value == "" {
				return nil, fmt.Errorf("mount option %q needs a value", key)
			}
			fsName = value
		case "subtype":
			if !hasValue || value == "" {
				return nil, fmt.Errorf("mount option %q needs a value", key)
			}
			subtype = value
		case "max_readahead":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid max_readahead %q: %w", value, err)
			}
			mountOpts = append(mountOpts, fuse.MaxReadahead(uint32(n)))
		default:
			return nil, fmt.Errorf("unknown mount option %q", opt)
		}
	}

	base := []fuse.MountOption{fuse.FSName(fsName), fuse.Subtype(subtype), fuse.LockingFlock()}
	return append(base, mountOpts...), nil
}
