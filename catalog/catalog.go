package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/snapshot"
)

const (
	// CurrentName is the blob that names the latest committed run.
	CurrentName = "CURRENT"
	// RunsPrefix is the blob prefix of run snapshots.
	RunsPrefix = "runs/"

	runSuffix = ".snap"
)

// ErrNoRuns is returned by Latest before the first commit.
var ErrNoRuns = errors.New("catalog: no runs committed")

// Catalog manages run snapshots and the CURRENT pointer.
type Catalog struct {
	store blobstore.BlobStore
	opts  []snapshot.Option
	mu    sync.Mutex
}

// New creates a catalog on store. opts are passed to every snapshot
// Write and Read.
func New(store blobstore.BlobStore, opts ...snapshot.Option) *Catalog {
	return &Catalog{
		store: store,
		opts:  opts,
	}
}

// RunName returns the blob name of run seq written under id. id keeps
// concurrent committers that picked the same seq from overwriting each
// other.
func RunName(seq uint64, id string) string {
	return fmt.Sprintf("%s%06d-%s%s", RunsPrefix, seq, id, runSuffix)
}

// ParseRunName returns the sequence number encoded in a run blob name.
func ParseRunName(name string) (uint64, bool) {
	if !strings.HasPrefix(name, RunsPrefix) || !strings.HasSuffix(name, runSuffix) {
		return 0, false
	}
	base := strings.TrimSuffix(strings.TrimPrefix(name, RunsPrefix), runSuffix)

	digits, id, ok := strings.Cut(base, "-")
	if !ok || id == "" || strings.ContainsAny(id, "/.") {
		return 0, false
	}
	seq, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

// Commit stores res as the next run and makes it current.
//
// The run blob name is unique per commit. If publishing CURRENT fails the
// run blob is removed again.
func (c *Catalog) Commit(ctx context.Context, res *kmeanspp.Result) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runs, err := c.List(ctx)
	if err != nil {
		return "", err
	}

	var next uint64 = 1
	if len(runs) > 0 {
		last, _ := ParseRunName(runs[len(runs)-1])
		next = last + 1
	}

	name := RunName(next, uuid.NewString())
	if err := snapshot.Write(ctx, c.store, name, res, c.opts...); err != nil {
		return "", err
	}

	if err := c.store.Put(ctx, CurrentName, []byte(name)); err != nil {
		if derr := c.store.Delete(context.WithoutCancel(ctx), name); derr != nil {
			err = errors.Join(err, derr)
		}
		return "", fmt.Errorf("catalog: publish %s: %w", name, err)
	}
	return name, nil
}

// Current returns the name of the latest committed run.
func (c *Catalog) Current(ctx context.Context) (string, error) {
	data, err := blobstore.ReadAll(ctx, c.store, CurrentName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return "", ErrNoRuns
	}
	if err != nil {
		return "", fmt.Errorf("catalog: read %s: %w", CurrentName, err)
	}

	name := strings.TrimSpace(string(data))
	if _, ok := ParseRunName(name); !ok {
		return "", fmt.Errorf("catalog: %s names invalid run %q", CurrentName, name)
	}
	return name, nil
}

// Latest loads the run named by CURRENT.
func (c *Catalog) Latest(ctx context.Context) (string, *kmeanspp.Result, error) {
	name, err := c.Current(ctx)
	if err != nil {
		return "", nil, err
	}

	res, err := c.Get(ctx, name)
	if err != nil {
		return "", nil, err
	}
	return name, res, nil
}

// Get loads a run by name.
func (c *Catalog) Get(ctx context.Context, name string) (*kmeanspp.Result, error) {
	return snapshot.Read(ctx, c.store, name, c.opts...)
}

// List returns run names in commit order.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	names, err := c.store.List(ctx, RunsPrefix)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}

	type run struct {
		name string
		seq  uint64
	}
	var runs []run
	for _, name := range names {
		if seq, ok := ParseRunName(name); ok {
			runs = append(runs, run{name: name, seq: seq})
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].seq != runs[j].seq {
			return runs[i].seq < runs[j].seq
		}
		return runs[i].name < runs[j].name
	})

	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.name
	}
	return out, nil
}
