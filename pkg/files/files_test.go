package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirEntry(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		name := "testfile"
		de := NewDirEntry(name, 0)

		if de.Name() != name {
			t.Errorf("expected Name() = %v, got %v", name, de.Name())
		}
		if de.IsDir() {
			t.Errorf("expected IsDir() = false")
		}
		if de.Type() != 0 {
			t.Errorf("expected Type() = 0, got %v", de.Type())
		}
		info, err := de.Info()
		if err != nil {
			t.Errorf("expected no error from Info(), got %v", err)
		}
		if info != nil {
			t.Errorf("expected nil info when no options provided, got %v", info)
		}
	})

	t.Run("directory", func(t *testing.T) {
		de := NewDirEntry("testdir", os.ModeDir|0o755)
		if !de.IsDir() {
			t.Errorf("expected IsDir() = true")
		}
		if de.Type() != os.ModeDir {
			t.Errorf("expected Type() = %v, got %v", os.ModeDir, de.Type())
		}
	})

	t.Run("with_info", func(t *testing.T) {
		de := NewDirEntry("testfile", 0, Size(123))

		info, err := de.Info()
		assert.NoError(t, err)
		if info == nil {
			t.Fatal("expected non-nil info when options provided")
		}
		assert.Equal(t, "testfile", info.Name())
		assert.Equal(t, int64(123), info.Size())
		assert.False(t, info.IsDir())
		assert.Equal(t, de.Type(), info.Mode())
		assert.True(t, info.ModTime().IsZero())
		assert.Nil(t, info.Sys())
	})

	t.Run("with_info_error", func(t *testing.T) {
		de := NewDirEntry("gone", 0, InfoErr(fs.ErrNotExist))
		info, err := de.Info()
		assert.Nil(t, info)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestNewDirEntry_PanicsOnNameWithPath(t *testing.T) {
	name := filepath.Join("parent", "child")
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for name with path")
		}
	}()
	_ = NewDirEntry(name, 0)
}

func TestFileInfo_NilReceiver(t *testing.T) {
	var f *FileInfo
	if f.Name() != "" {
		t.Errorf("expected empty name for nil FileInfo")
	}
	if f.Size() != 0 {
		t.Errorf("expected 0 size for nil FileInfo")
	}
	if f.Mode() != 0 {
		t.Errorf("expected 0 mode for nil FileInfo")
	}
	if f.IsDir() {
		t.Errorf("expected false for IsDir() for nil FileInfo")
	}
}

func TestKindFromMode(t *testing.T) {
	tests := []struct {
		mode     os.FileMode
		expected Kind
	}{
		{0o644, File},
		{os.ModeDir | 0o755, Directory},
		{os.ModeSymlink | 0o777, Symlink},
		{os.ModeNamedPipe, File},
		{os.ModeDevice | os.ModeCharDevice, File},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, KindFromMode(tt.mode))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "file", File.String())
	assert.Equal(t, "dir", Directory.String())
	assert.Equal(t, "symlink", Symlink.String())
	assert.Equal(t, "unreadable", Unreadable.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestClassify(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
	})
	t.Run("permission", func(t *testing.T) {
		cause := &fs.PathError{Op: "open", Path: "/root/secret", Err: fs.ErrPermission}
		err := Classify(cause)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.ErrorIs(t, err, fs.ErrPermission)
		assert.Contains(t, err.Error(), "/root/secret")
	})
	t.Run("not_exist", func(t *testing.T) {
		err := Classify(fs.ErrNotExist)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("already_classified", func(t *testing.T) {
		err := fmt.Errorf("%w: a -> a", ErrSymlinkCycle)
		assert.Equal(t, err, Classify(err))
	})
	t.Run("other", func(t *testing.T) {
		other := errors.New("i/o error")
		assert.Equal(t, other, Classify(other))
	})
}

func TestChildFromDirEntry(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		child := ChildFromDirEntry(NewDirEntry("x", 0, Size(100)))
		assert.Equal(t, Child{Name: "x", Kind: File, Size: 100}, child)
	})
	t.Run("dir_reports_zero", func(t *testing.T) {
		child := ChildFromDirEntry(NewDirEntry("d", os.ModeDir, Size(4096)))
		assert.Equal(t, Child{Name: "d", Kind: Directory}, child)
	})
	t.Run("symlink_reports_link_size", func(t *testing.T) {
		child := ChildFromDirEntry(NewDirEntry("l", os.ModeSymlink, Size(7)))
		assert.Equal(t, Child{Name: "l", Kind: Symlink, Size: 7}, child)
	})
	t.Run("no_info", func(t *testing.T) {
		child := ChildFromDirEntry(NewDirEntry("d", os.ModeDir))
		assert.Equal(t, Child{Name: "d", Kind: Directory}, child)
	})
	t.Run("info_error", func(t *testing.T) {
		child := ChildFromDirEntry(NewDirEntry("gone", 0, InfoErr(fs.ErrNotExist)))
		assert.Equal(t, Unreadable, child.Kind)
		assert.Equal(t, int64(0), child.Size)
		assert.ErrorIs(t, child.Err, ErrNotFound)
	})
}
