package main

// Notes:
// - Shared mocks for the convert tests: a recording converter, a pool that
//   hands it out, and an Environment wired to buffers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	gamebook "github.com/alnah/go-gamebook"
)

// linear is a manuscript whose paragraphs are all pinned, so any seed gives
// the same numbering.
const linear = "●●1\nGo to ##★LAST★##.\n●●★LAST★\nEnd. ##1##\n"

// linearText is linear converted with the default options.
const linearText = "●1\nGo to 2.\n●2\nEnd. 1\n"

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records its inputs and echoes the manuscript back.
type mockConverter struct {
	mu     sync.Mutex
	inputs []gamebook.Input
	err    error
}

func (m *mockConverter) Convert(_ context.Context, in gamebook.Input) (*gamebook.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &gamebook.Result{
		Seed: 7,
		Text: []byte("text:" + in.Manuscript),
		HTML: []byte("<p>" + in.Title + "</p>"),
		PDF:  []byte("%PDF-1.7 mock"),
	}, nil
}

func (m *mockConverter) titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	titles := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		titles[i] = in.Title
	}
	sort.Strings(titles)
	return titles
}

// mockPool hands out conv. A nil conv makes Acquire fail.
type mockPool struct {
	conv     CLIConverter
	size     int
	initErr  error
	mu       sync.Mutex
	closed   bool
	released int
	gotSize  int
	gotOpts  int
}

var _ Pool = (*mockPool)(nil)

func (p *mockPool) Acquire() CLIConverter { return p.conv }

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int      { return p.size }
func (p *mockPool) InitErr() error { return p.initErr }

func (p *mockPool) Close() error {
	p.closed = true
	return nil
}

// factory is a PoolFactory returning p.
func (p *mockPool) factory(size int, opts ...gamebook.Option) Pool {
	p.gotSize = size
	p.gotOpts = len(opts)
	if p.size == 0 {
		p.size = size
	}
	return p
}

// ---------------------------------------------------------------------------
// Environment Helpers
// ---------------------------------------------------------------------------

// testEnv is an Environment wired to buffers.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an Environment reading stdin and the given variables.
// A nil factory uses the real converter pool.
func newTestEnv(stdin string, vars map[string]string, factory PoolFactory) *testEnv {
	if factory == nil {
		factory = newConverterPool
	}
	te := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) },
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			kv := make([]string, 0, len(vars))
			for k, v := range vars {
				kv = append(kv, k+"="+v)
			}
			return kv
		},
		NewPool: factory,
	}
	return te
}

// writeFile writes content to name under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// mustParse parses convert flags or fails the test.
func mustParse(t *testing.T, args ...string) (*convertFlags, []string) {
	t.Helper()
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		t.Fatalf("parseConvertFlags(%v) error = %v", args, err)
	}
	return flags, positional
}
