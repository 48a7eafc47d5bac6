package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/stoich/errors"
)

func TestNewValidation(t *testing.T) {
	noop := func(context.Context) ([]string, error) { return nil, nil }

	_, err := New(noop, Options{})
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = New(noop, Options{Paths: []string{"in.csv"}, OnChange: `echo "unterminated`})
	assert.True(t, errors.IsInvalidRequestError(err))

	w, err := New(noop, Options{Paths: []string{"a/in.csv", "a/am.toml", ""}, OnChange: "notify-send 'stoich done'"})
	require.NoError(t, err)
	assert.Len(t, w.targets, 2)
	assert.Len(t, w.dirs, 1)
	assert.Equal(t, []string{"notify-send", "stoich done"}, w.hook)
	assert.Equal(t, 500*time.Millisecond, w.debounce)
}

func TestRunReactsToChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(input, []byte("Formula\n"), 0644))

	var calls atomic.Int32
	ran := make(chan struct{}, 10)
	run := func(context.Context) ([]string, error) {
		calls.Add(1)
		ran <- struct{}{}
		return []string{"out.csv"}, nil
	}

	w, err := New(run, Options{
		Paths:    []string{input},
		Debounce: 20 * time.Millisecond,
		Logger:   zaptest.NewLogger(t).Sugar(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, ran) // initial run

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in_processed.csv"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(input, []byte("Formula\nFe2O3\n"), 0644))
	waitFor(t, ran)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestRunHookReceivesOutputs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook test uses sh")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")

	w, err := New(nil, Options{
		Paths:    []string{filepath.Join(dir, "in.csv")},
		OnChange: fmt.Sprintf(`sh -c 'printf %%s "$%s" > %s'`, OutputEnv, marker),
		Logger:   zaptest.NewLogger(t).Sugar(),
	})
	require.NoError(t, err)

	require.NoError(t, w.runHook(context.Background(), []string{"a.csv", "b.csv"}))
	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "a.csv"+string(os.PathListSeparator)+"b.csv", string(data))
}

func TestRunHookFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook test uses sh")
	}
	w, err := New(nil, Options{Paths: []string{"in.csv"}, OnChange: "sh -c 'exit 3'"})
	require.NoError(t, err)
	assert.Error(t, w.runHook(context.Background(), nil))
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for run")
	}
}
