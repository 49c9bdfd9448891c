package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func txtOnly(ext string) bool { return ext == ".txt" }

func collect(t *testing.T, files <-chan domain.RawFile, errs <-chan error) ([]domain.RawFile, error) {
	t.Helper()
	var out []domain.RawFile
	for f := range files {
		out = append(out, f)
	}
	return out, <-errs
}

func TestNew(t *testing.T) {
	c := New("/tmp/test")

	require.NotNil(t, c)
	assert.Equal(t, "/tmp/test", c.RootPath())
	assert.Equal(t, DefaultDebounce, c.debounce)
	assert.True(t, c.supports(".anything"))
}

func TestNew_Options(t *testing.T) {
	c := New("/tmp", WithSupports(txtOnly), WithDebounce(time.Second), WithDebounce(0), WithSupports(nil))

	assert.Equal(t, time.Second, c.debounce)
	assert.True(t, c.supports(".txt"))
	assert.False(t, c.supports(".png"))
}

func TestConnector_FullSync(t *testing.T) {
	t.Run("emits supported files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("png"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "C.TXT"), []byte("gamma"), 0644))

		ch, errCh := New(dir, WithSupports(txtOnly)).FullSync(context.Background())
		files, err := collect(t, ch, errCh)

		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "a.txt", files[0].Name)
		assert.Equal(t, "alpha", string(files[0].Content))
		assert.Equal(t, ".txt", files[1].Extension)
		assert.Equal(t, filepath.Join(dir, "sub", "C.TXT"), files[1].Path)
	})

	t.Run("skips hidden files and directories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("v"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("h"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "inside.txt"), []byte("g"), 0644))

		ch, errCh := New(dir).FullSync(context.Background())
		files, err := collect(t, ch, errCh)

		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "visible.txt", files[0].Name)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		ch, errCh := New("/non/existent/path").FullSync(context.Background())
		files, err := collect(t, ch, errCh)

		assert.Empty(t, files)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("root is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		ch, errCh := New(path).FullSync(context.Background())
		_, err := collect(t, ch, errCh)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ch, errCh := New(dir).FullSync(ctx)
		files, err := collect(t, ch, errCh)

		assert.Empty(t, files)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConnector_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Notes.TXT")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	file, err := New(filepath.Dir(path)).Read(path)

	require.NoError(t, err)
	assert.Equal(t, domain.RawFile{Name: "Notes.TXT", Path: path, Extension: ".txt", Content: []byte("hello")}, file)

	_, err = New("/").Read(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestConnector_Watch(t *testing.T) {
	t.Run("debounces writes into one create", func(t *testing.T) {
		dir := t.TempDir()
		c := New(dir, WithSupports(txtOnly), WithDebounce(50*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer c.Close()

		changes, err := c.Watch(ctx)
		require.NoError(t, err)

		path := filepath.Join(dir, "new.txt")
		require.NoError(t, os.WriteFile(path, []byte("one"), 0644))
		require.NoError(t, os.WriteFile(path, []byte("two"), 0644))

		select {
		case change := <-changes:
			assert.Equal(t, ChangeCreated, change.Type)
			assert.Equal(t, path, change.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change")
		}

		select {
		case change := <-changes:
			t.Fatalf("unexpected second change: %+v", change)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("ignores unsupported files", func(t *testing.T) {
		dir := t.TempDir()
		c := New(dir, WithSupports(txtOnly), WithDebounce(20*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer c.Close()

		changes, err := c.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("png"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("text"), 0644))

		select {
		case change := <-changes:
			assert.Equal(t, filepath.Join(dir, "doc.txt"), change.Path)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change")
		}
	})

	t.Run("closes channel on cancel", func(t *testing.T) {
		c := New(t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())
		defer c.Close()

		changes, err := c.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("channel not closed")
		}
	})

	t.Run("second watch fails", func(t *testing.T) {
		c := New(t.TempDir())
		defer c.Close()

		_, err := c.Watch(context.Background())
		require.NoError(t, err)
		_, err = c.Watch(context.Background())
		assert.Error(t, err)
	})

	t.Run("watch after close fails", func(t *testing.T) {
		c := New(t.TempDir())
		require.NoError(t, c.Close())

		_, err := c.Watch(context.Background())
		assert.Error(t, err)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		c := New("/non/existent/path")
		defer c.Close()

		_, err := c.Watch(context.Background())
		assert.Error(t, err)
	})
}

func TestConnector_Close_Idempotent(t *testing.T) {
	c := New(t.TempDir())
	_, err := c.Watch(context.Background())
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		setupDir  bool
		create    bool
		operation fsnotify.Op
		want      ChangeType
	}{
		{name: "create file event", file: "test.txt", create: true, operation: fsnotify.Create, want: ChangeCreated},
		{name: "write file event", file: "test.txt", create: true, operation: fsnotify.Write, want: ChangeUpdated},
		{name: "remove file event", file: "gone.txt", operation: fsnotify.Remove},
		{name: "rename file event", file: "gone.txt", operation: fsnotify.Rename},
		{name: "chmod file event", file: "test.txt", create: true, operation: fsnotify.Chmod},
		{name: "directory create", file: "dir.txt", setupDir: true, operation: fsnotify.Create},
		{name: "hidden file create", file: ".hidden.txt", create: true, operation: fsnotify.Create},
		{name: "unsupported extension", file: "image.png", create: true, operation: fsnotify.Create},
		{name: "create event for missing file", file: "vanished.txt", operation: fsnotify.Create},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if tt.setupDir {
				require.NoError(t, os.Mkdir(path, 0755))
			}
			if tt.create {
				require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
			}

			change := New(dir, WithSupports(txtOnly)).handleFsEvent(fsnotify.Event{Name: path, Op: tt.operation})

			if tt.want == "" {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.want, change.Type)
			assert.Equal(t, path, change.Path)
		})
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{".hidden.txt", true},
		{"visible.txt", false},
		{".", false},
		{"..", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHidden(tt.name))
		})
	}
}
