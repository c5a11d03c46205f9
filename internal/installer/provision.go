package installer

import (
	"context"       // Cancels the download
	"errors"        // errors.As on wrapped failures
	"fmt"           // Error formatting
	"os"            // Directory and payload handling
	"path/filepath" // Payload path in the scratch dir
	"strings"       // URL joining

	"msys-console/internal/logger" // Colored progress output
)

// VersionStore reads and records the installed version token.
type VersionStore interface {
	Current() (string, bool, error)
	Record(version string) error
}

// Kind classifies which provisioning step failed.
type Kind int

const (
	// KindPrepare covers creating the root and scratch directories.
	KindPrepare Kind = iota
	// KindDownload covers fetching the archive and saving the payload.
	KindDownload
	// KindExtract covers removing the old installation and unpacking the new one.
	KindExtract
	// KindPersist covers writing the version marker.
	KindPersist
)

func (k Kind) String() string {
	switch k {
	case KindPrepare:
		return "prepare"
	case KindDownload:
		return "download"
	case KindExtract:
		return "extract"
	case KindPersist:
		return "persist"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ProvisionError is returned by EnsureInstalled. Err keeps the underlying
// *TransportError or *ExtractError reachable with errors.As.
type ProvisionError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// IsKind reports whether err is a ProvisionError of kind k.
func IsKind(err error, k Kind) bool {
	var pe *ProvisionError
	return errors.As(err, &pe) && pe.Kind == k
}

// Options locates the environment on disk and the distribution server.
type Options struct {
	// BaseURL is the distribution root; archives are fetched from BaseURL/<version>.
	BaseURL string
	// Root is the environment root. It is created when missing.
	Root string
	// InstallDir receives the archive content and is replaced on reinstall.
	InstallDir string
	// ScratchDir holds the downloaded payload for the duration of one attempt.
	ScratchDir string
}

// Result describes what EnsureInstalled did.
type Result struct {
	Version string
	// Installed is true when the environment was (re)installed by this call.
	Installed bool
}

// Provisioner keeps the environment root at the desired version.
type Provisioner struct {
	opts      Options
	store     VersionStore
	fetcher   Fetcher
	extractor Extractor
}

// NewProvisioner wires a Provisioner from its collaborators.
func NewProvisioner(opts Options, store VersionStore, fetcher Fetcher, extractor Extractor) *Provisioner {
	return &Provisioner{opts: opts, store: store, fetcher: fetcher, extractor: extractor}
}

// EnsureInstalled installs desired unless the marker already names it.
//
// The sequence is download, remove the old installation, extract, record the
// version. It is not transactional: a failed extraction leaves the old
// installation gone and the new one incomplete, and the next run starts over
// because the marker was not updated.
func (p *Provisioner) EnsureInstalled(ctx context.Context, desired string) (Result, error) {
	// Read the installed version; an unreadable marker means reinstall
	current, ok, err := p.store.Current()
	if err != nil {
		logger.Warn("[WARN] Cannot read installed version, reinstalling: %v\n", err)
	}
	// Same token: nothing to do, no network and no file changes
	if err == nil && ok && current == desired {
		logger.Info("[INFO] %s is current. Skipping.\n", desired)
		return Result{Version: desired}, nil
	}
	if ok {
		logger.Info("[INFO] Upgrading %s to %s\n", current, desired)
	} else {
		logger.Info("[INFO] Installing %s\n", desired)
	}

	// Make sure the root and scratch directories exist
	for _, dir := range []string{p.opts.Root, p.opts.ScratchDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, &ProvisionError{Kind: KindPrepare, Op: "create " + dir, Err: err}
		}
	}

	// Fetch the archive from the distribution root
	url := strings.TrimRight(p.opts.BaseURL, "/") + "/" + desired
	logger.Info("[INFO] Downloading %s\n", url)
	data, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return Result{}, &ProvisionError{Kind: KindDownload, Op: "download " + desired, Err: err}
	}

	// Save the payload in scratch; it is removed whatever happens next
	payload := filepath.Join(p.opts.ScratchDir, filepath.Base(desired))
	defer func() {
		if rerr := os.Remove(payload); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			logger.Warn("[WARN] Failed to remove %s: %v\n", payload, rerr)
		}
	}()
	if err := savePayload(payload, data); err != nil {
		return Result{}, &ProvisionError{Kind: KindDownload, Op: "save " + desired, Err: err}
	}

	// Drop the previous installation so no stale file survives
	if err := removeInstallation(p.opts.InstallDir); err != nil {
		return Result{}, &ProvisionError{Kind: KindExtract, Op: "remove previous installation", Err: err}
	}
	if err := os.MkdirAll(p.opts.InstallDir, 0755); err != nil {
		return Result{}, &ProvisionError{Kind: KindExtract, Op: "create " + p.opts.InstallDir, Err: err}
	}

	// Unpack the archive into the fresh install dir
	logger.Info("[INFO] Unpacking %s to %s\n", payload, p.opts.InstallDir)
	if err := p.extractor.Extract(payload, p.opts.InstallDir); err != nil {
		return Result{}, &ProvisionError{Kind: KindExtract, Op: "unpack " + desired, Err: err}
	}

	// The files are in place even if the marker cannot be written.
	if err := p.store.Record(desired); err != nil {
		return Result{Version: desired, Installed: true},
			&ProvisionError{Kind: KindPersist, Op: "record version " + desired, Err: err}
	}

	logger.Info("[INFO] Installed %s\n", desired)
	return Result{Version: desired, Installed: true}, nil
}
