// Package scanner walks a directory tree on a bounded worker pool and
// returns a fully aggregated sizetree.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/filetug/dutug/pkg/files"
	"github.com/filetug/dutug/pkg/files/osfile"
	"github.com/filetug/dutug/pkg/sizetree"
	"go.uber.org/zap"
)

// ErrInvalidRoot means the scan root is missing, unreadable or not a directory.
var ErrInvalidRoot = errors.New("invalid root")

var filepathAbs = filepath.Abs

type Config struct {
	FollowSymlinks bool
	// Workers bounds concurrent directory scans; <= 0 means one per logical CPU.
	Workers int
}

type AnomalyKind uint8

const (
	// SymlinkCycle is a followed link pointing at one of its own ancestors.
	SymlinkCycle AnomalyKind = iota
	// DuplicateTarget is a followed link to a directory already counted elsewhere.
	DuplicateTarget
)

func (k AnomalyKind) String() string {
	switch k {
	case SymlinkCycle:
		return "symlink cycle"
	case DuplicateTarget:
		return "duplicate target"
	default:
		return fmt.Sprintf("AnomalyKind(%d)", k)
	}
}

// Anomaly is a non-fatal oddity met while following symlinks.
type Anomaly struct {
	Kind   AnomalyKind
	Path   string
	Target string
}

// Stats counts what has been scanned so far.
type Stats struct {
	Files      int64
	Dirs       int64
	Symlinks   int64
	Unreadable int64
	Bytes      int64
}

type Result struct {
	Root *sizetree.Entry
	// RootPath is absolute; canonical when symlinks are followed.
	RootPath  string
	Anomalies []Anomaly
	Stats     Stats
}

type Option func(s *Scanner)

func WithProbe(probe files.Probe) Option {
	return func(s *Scanner) {
		s.probe = probe
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

type statCounters struct {
	files      atomic.Int64
	dirs       atomic.Int64
	symlinks   atomic.Int64
	unreadable atomic.Int64
	bytes      atomic.Int64
}

// Scanner builds one size tree. Stats may be read from any goroutine while
// Scan runs.
type Scanner struct {
	cfg    Config
	probe  files.Probe
	logger *zap.Logger

	visited visitedSet
	stats   statCounters

	anomaliesMu sync.Mutex
	anomalies   []Anomaly
}

func New(cfg Config, o ...Option) *Scanner {
	s := &Scanner{cfg: cfg}
	for _, opt := range o {
		opt(s)
	}
	if s.probe == nil {
		s.probe = osfile.NewProbe()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Scan is a shortcut for New(cfg, o...).Scan(ctx, rootPath).
func Scan(ctx context.Context, rootPath string, cfg Config, o ...Option) (*Result, error) {
	return New(cfg, o...).Scan(ctx, rootPath)
}

func (s *Scanner) Stats() Stats {
	return Stats{
		Files:      s.stats.files.Load(),
		Dirs:       s.stats.dirs.Load(),
		Symlinks:   s.stats.symlinks.Load(),
		Unreadable: s.stats.unreadable.Load(),
		Bytes:      s.stats.bytes.Load(),
	}
}

// Scan walks rootPath and returns the complete tree. Only an invalid root
// or a cancelled ctx fail the scan; every other problem is recorded in the
// tree as an Unreadable entry. A Scanner must not be reused.
func (s *Scanner) Scan(ctx context.Context, rootPath string) (*Result, error) {
	absPath, err := filepathAbs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRoot, rootPath, err)
	}
	target, err := s.probe.Resolve(ctx, absPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !target.IsDir {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, absPath)
	}

	result := &Result{RootPath: absPath}
	var chain *realChain
	if s.cfg.FollowSymlinks {
		result.RootPath = target.RealPath
		s.visited.claim(target.RealPath)
		chain = chain.push(target.RealPath)
	}

	pool := newWorkerPool(ctx, s.cfg.Workers)
	defer pool.Close()

	s.logger.Debug("scan started",
		zap.String("root", result.RootPath),
		zap.Bool("followSymlinks", s.cfg.FollowSymlinks),
		zap.Int("workers", pool.workers))

	root := s.scanDir(ctx, pool, result.RootPath, filepath.Base(result.RootPath), chain)
	if err = ctx.Err(); err != nil {
		s.logger.Debug("scan cancelled", zap.String("root", result.RootPath))
		return nil, err
	}
	if root.Kind() == files.Unreadable {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, root.Err())
	}

	result.Root = root
	result.Stats = s.Stats()
	s.anomaliesMu.Lock()
	result.Anomalies = s.anomalies
	s.anomaliesMu.Unlock()

	s.logger.Info("scan finished",
		zap.String("root", result.RootPath),
		zap.Int64("bytes", root.Size()),
		zap.Int64("files", result.Stats.Files),
		zap.Int64("dirs", result.Stats.Dirs),
		zap.Int64("unreadable", result.Stats.Unreadable),
		zap.Int("anomalies", len(result.Anomalies)))
	return result, nil
}

// scanDir lists dirPath and joins all of its subtrees into one entry.
// chain is nil unless symlinks are followed. Returns nil if ctx is cancelled;
// a nil result is never joined into a parent.
func (s *Scanner) scanDir(ctx context.Context, pool *workerPool, dirPath, name string, chain *realChain) *sizetree.Entry {
	children, err := s.probe.ListChildren(ctx, dirPath)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return s.unreadable(dirPath, name, err)
	}
	s.stats.dirs.Add(1)

	entries := make([]*sizetree.Entry, len(children))
	var wg sync.WaitGroup
	descend := func(i int, childPath, childName string, childChain *realChain) {
		wg.Add(1)
		unit := func() {
			defer wg.Done()
			entries[i] = s.scanDir(ctx, pool, childPath, childName, childChain)
		}
		if !pool.Submit(unit) {
			unit()
		}
	}

	if chain != nil {
		// Real subdirectories are claimed before any sibling link is
		// resolved, so a link to a sibling is the duplicate, not the directory.
		// The parent path is canonical and the child is not a link,
		// so the child's canonical path needs no syscall.
		for _, child := range children {
			if child.Kind == files.Directory {
				s.visited.claim(filepath.Join(chain.path, child.Name))
			}
		}
	}

	for i, child := range children {
		if ctx.Err() != nil {
			break
		}
		childPath := filepath.Join(dirPath, child.Name)
		switch child.Kind {
		case files.Directory:
			var childChain *realChain
			if chain != nil {
				childChain = chain.push(filepath.Join(chain.path, child.Name))
			}
			descend(i, childPath, child.Name, childChain)
		case files.Symlink:
			if chain == nil {
				entries[i] = s.leaf(sizetree.NewSymlink(child.Name, child.Size))
				continue
			}
			entry, realPath := s.followSymlink(ctx, childPath, child, chain)
			if entry != nil {
				entries[i] = entry
				continue
			}
			descend(i, childPath, child.Name, chain.push(realPath))
		case files.Unreadable:
			entries[i] = s.unreadable(childPath, child.Name, child.Err)
		default:
			entries[i] = s.leaf(sizetree.NewFile(child.Name, child.Size))
		}
	}

	wg.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return sizetree.NewDir(name, entries)
}

// followSymlink returns the leaf entry for a link that must not be
// descended, or the canonical path of the directory to descend into.
func (s *Scanner) followSymlink(ctx context.Context, linkPath string, child files.Child, chain *realChain) (*sizetree.Entry, string) {
	target, err := s.probe.Resolve(ctx, linkPath)
	if err != nil {
		s.logger.Debug("dangling symlink", zap.String("path", linkPath), zap.Error(err))
		return s.leaf(sizetree.NewSymlink(child.Name, child.Size)), ""
	}
	if !target.IsDir {
		return s.leaf(sizetree.NewFile(child.Name, target.Size)), ""
	}
	if chain.contains(target.RealPath) {
		s.anomaly(Anomaly{Kind: SymlinkCycle, Path: linkPath, Target: target.RealPath})
		err = fmt.Errorf("%w: %s -> %s", files.ErrSymlinkCycle, linkPath, target.RealPath)
		s.stats.unreadable.Add(1)
		return sizetree.NewUnreadable(child.Name, err), ""
	}
	if !s.visited.claim(target.RealPath) {
		s.anomaly(Anomaly{Kind: DuplicateTarget, Path: linkPath, Target: target.RealPath})
		return s.leaf(sizetree.NewSymlink(child.Name, 0)), ""
	}
	return nil, target.RealPath
}

func (s *Scanner) leaf(entry *sizetree.Entry) *sizetree.Entry {
	switch entry.Kind() {
	case files.Symlink:
		s.stats.symlinks.Add(1)
	default:
		s.stats.files.Add(1)
	}
	s.stats.bytes.Add(entry.Size())
	return entry
}

func (s *Scanner) unreadable(entryPath, name string, err error) *sizetree.Entry {
	s.stats.unreadable.Add(1)
	s.logger.Debug("unreadable entry", zap.String("path", entryPath), zap.Error(err))
	return sizetree.NewUnreadable(name, err)
}

func (s *Scanner) anomaly(a Anomaly) {
	s.anomaliesMu.Lock()
	s.anomalies = append(s.anomalies, a)
	s.anomaliesMu.Unlock()
	s.logger.Warn("symlink not descended",
		zap.Stringer("reason", a.Kind),
		zap.String("path", a.Path),
		zap.String("target", a.Target))
}
