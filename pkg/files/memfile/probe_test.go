package memfile

import (
	"context"
	"testing"

	"github.com/filetug/dutug/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProbe() *Probe {
	return NewProbe().
		AddDir("/root").
		AddFile("/root/x", 100).
		AddFile("/root/y", 50).
		AddDir("/root/d").
		AddFile("/root/d/z", 25).
		AddSymlink("/root/d/up", "..").
		AddSymlink("/root/abs", "/root/d").
		AddSymlink("/root/dangling", "nowhere").
		AddSymlink("/root/self", "self")
}

func TestProbe_ListChildren(t *testing.T) {
	probe := newTestProbe()
	children, err := probe.ListChildren(context.Background(), "/root")
	require.NoError(t, err)
	assert.Equal(t, []files.Child{
		{Name: "abs", Kind: files.Symlink, Size: int64(len("/root/d"))},
		{Name: "d", Kind: files.Directory},
		{Name: "dangling", Kind: files.Symlink, Size: int64(len("nowhere"))},
		{Name: "self", Kind: files.Symlink, Size: int64(len("self"))},
		{Name: "x", Kind: files.File, Size: 100},
		{Name: "y", Kind: files.File, Size: 50},
	}, children)
}

func TestProbe_ListChildren_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("denied", func(t *testing.T) {
		probe := newTestProbe().Deny("/root/d")
		_, err := probe.ListChildren(ctx, "/root/d")
		assert.ErrorIs(t, err, files.ErrAccessDenied)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := newTestProbe().ListChildren(ctx, "/root/missing")
		assert.ErrorIs(t, err, files.ErrNotFound)
	})

	t.Run("not_a_dir", func(t *testing.T) {
		_, err := newTestProbe().ListChildren(ctx, "/root/x")
		assert.Error(t, err)
	})

	t.Run("vanished_entry", func(t *testing.T) {
		probe := newTestProbe().Vanish("/root/d/z")
		children, err := probe.ListChildren(ctx, "/root/d")
		require.NoError(t, err)
		require.Len(t, children, 2)
		assert.Equal(t, "up", children[0].Name)
		assert.Equal(t, files.Unreadable, children[1].Kind)
		assert.ErrorIs(t, children[1].Err, files.ErrNotFound)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := newTestProbe().ListChildren(cancelled, "/root")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("on_list_hook", func(t *testing.T) {
		var listed []string
		probe := newTestProbe().OnList(func(dirPath string) {
			listed = append(listed, dirPath)
		})
		_, _ = probe.ListChildren(ctx, "/root")
		assert.Equal(t, []string{"/root"}, listed)
	})
}

func TestProbe_Resolve(t *testing.T) {
	probe := newTestProbe()
	ctx := context.Background()

	tests := []struct {
		name     string
		path     string
		expected files.Target
	}{
		{"plain_dir", "/root/d", files.Target{RealPath: "/root/d", IsDir: true}},
		{"plain_file", "/root/x", files.Target{RealPath: "/root/x", Size: 100}},
		{"relative_parent", "/root/d/up", files.Target{RealPath: "/root", IsDir: true}},
		{"absolute", "/root/abs", files.Target{RealPath: "/root/d", IsDir: true}},
		{"through_links", "/root/abs/up/abs/z", files.Target{RealPath: "/root/d/z", Size: 25}},
		{"root", "/", files.Target{RealPath: "/", IsDir: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := probe.Resolve(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, target)
		})
	}

	t.Run("dangling", func(t *testing.T) {
		_, err := probe.Resolve(ctx, "/root/dangling")
		assert.ErrorIs(t, err, files.ErrNotFound)
	})

	t.Run("self_loop", func(t *testing.T) {
		_, err := probe.Resolve(ctx, "/root/self")
		assert.ErrorIs(t, err, errTooManyLinks)
	})
}

func TestProbe_BuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewProbe().AddFile("/missing/x", 1)
	})
	assert.Panics(t, func() {
		NewProbe().AddFile("/x", 1).AddFile("/x/y", 1)
	})
}
