package respond_test

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/mintleaf-web/respond"
	"github.com/mintleaf-web/respond/etag"
)

func newFileFs(t *testing.T) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fsys, "/srv/pub/report.txt", []byte("quarterly numbers"), 0o644))
	require.Nil(t, afero.WriteFile(fsys, "/srv/secret.txt", []byte("keep out"), 0o600))
	require.Nil(t, fsys.MkdirAll("/srv/pub/assets", 0o755))

	return fsys
}

func TestContextSendFile(t *testing.T) {
	t.Run("Streams-An-Absolute-Path", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{})

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "quarterly numbers", w.Body.String())
		require.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		require.Equal(t, "17", w.Header().Get("Content-Length"))
		require.Equal(t, "public, max-age=0", w.Header().Get("Cache-Control"))
		require.NotEmpty(t, w.Header().Get("ETag"))
		require.NotEmpty(t, w.Header().Get("Last-Modified"))
	})

	t.Run("Resolves-Relative-Paths-Under-Root", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("report.txt", respond.FileOptions{Root: "/srv/pub"})

		// Assert
		require.Nil(t, err)
		require.Equal(t, "quarterly numbers", w.Body.String())
	})

	t.Run("Empty-Path-Errors", func(t *testing.T) {
		// Arrange
		c, _ := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("", respond.FileOptions{})

		// Assert
		require.ErrorIs(t, err, respond.ErrInvalid)
	})

	t.Run("Relative-Path-Without-Root-Errors", func(t *testing.T) {
		// Arrange
		c, _ := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("report.txt", respond.FileOptions{})

		// Assert
		require.ErrorIs(t, err, respond.ErrInvalid)
	})

	t.Run("Traversal-Cannot-Escape-Root", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("../secret.txt", respond.FileOptions{Root: "/srv/pub"})

		// Assert
		require.ErrorIs(t, err, fs.ErrNotExist)
		require.Equal(t, 0, w.Body.Len())
	})

	t.Run("Absolute-Path-Confined-To-Root", func(t *testing.T) {
		// Arrange
		fsys := newFileFs(t)
		require.Nil(t, afero.WriteFile(fsys, "/etc/passwd", []byte("root:x:0:0"), 0o644))
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(fsys))

		// Act
		err := c.SendFile("/etc/passwd", respond.FileOptions{Root: "/srv/pub"})

		// Assert
		require.ErrorIs(t, err, fs.ErrNotExist)
		require.Equal(t, 0, w.Body.Len())
	})

	t.Run("Root-Serves-Its-Own-Absolute-Paths", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("/report.txt", respond.FileOptions{Root: "/srv/pub"})

		// Assert
		require.Nil(t, err)
		require.Equal(t, "quarterly numbers", w.Body.String())
	})

	t.Run("Missing-File-Surfaces", func(t *testing.T) {
		// Arrange
		c, _ := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("/srv/pub/nope.txt", respond.FileOptions{})

		// Assert
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("Directory-Falls-Through", func(t *testing.T) {
		// Arrange
		c, _ := newContext(t, http.MethodGet, "/assets", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("/srv/pub/assets", respond.FileOptions{})

		// Assert
		require.ErrorIs(t, err, respond.ErrSkipped)
	})

	t.Run("Directory-Leaves-The-Context-Writable", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/assets", respond.WithFs(newFileFs(t)))
		require.ErrorIs(t, c.SendFile("/srv/pub/assets", respond.FileOptions{}), respond.ErrSkipped)

		// Act
		err := c.Send("not here")

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "not here", w.Body.String())
	})

	t.Run("Missing-File-Leaves-The-Context-Writable", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))
		require.ErrorIs(t,
			c.SendFile("/srv/pub/nope.txt", respond.FileOptions{}), fs.ErrNotExist)

		// Act
		err := c.SendStatus(http.StatusNotFound)

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delivery-Still-Terminates-The-Context", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))
		require.Nil(t, c.SendFile("/srv/pub/report.txt", respond.FileOptions{}))

		// Act
		err := c.Send("again")

		// Assert
		require.ErrorIs(t, err, respond.ErrSent)
		require.Equal(t, "quarterly numbers", w.Body.String())
	})

	t.Run("Callback-Owns-Directory-Handling", func(t *testing.T) {
		// Arrange
		c, _ := newContext(t, http.MethodGet, "/assets", respond.WithFs(newFileFs(t)))

		var cbErr error

		// Act
		err := c.SendFile("/srv/pub/assets", respond.FileOptions{
			OnComplete: func(err error) { cbErr = err },
		})

		// Assert
		require.Nil(t, err)
		require.ErrorIs(t, cbErr, respond.ErrIsDir)
	})

	t.Run("Callback-Sees-Success", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		called := false
		var cbErr error

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{
			OnComplete: func(err error) {
				called = true
				cbErr = err
			},
		})

		// Assert
		require.Nil(t, err)
		require.True(t, called)
		require.Nil(t, cbErr)
		require.Equal(t, "quarterly numbers", w.Body.String())
	})

	t.Run("Header-Overrides-Apply", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{
			Header: map[string]string{
				"Cache-Control": "private, no-store",
				"X-Request-Id":  "abc123",
			},
		})

		// Assert
		require.Nil(t, err)
		require.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
		require.Equal(t, "abc123", w.Header().Get("X-Request-Id"))
	})

	t.Run("Fresh-Request-Completes-As-304", func(t *testing.T) {
		// Arrange
		fsys := newFileFs(t)
		fi, err := fsys.Stat("/srv/pub/report.txt")
		require.Nil(t, err)

		d := respond.NewResponder(respond.WithFs(fsys))
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/report", nil)
		r.Header.Set("If-None-Match", etag.File(fi))
		c := d.Context(w, r)

		// Act
		err = c.SendFile("/srv/pub/report.txt", respond.FileOptions{})

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusNotModified, w.Code)
		require.Equal(t, 0, w.Body.Len())
	})

	t.Run("Buffered-Status-Applies", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))
		require.Nil(t, c.Status(http.StatusCreated))

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{})

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Client-Abort-Swallowed-By-Default", func(t *testing.T) {
		// Arrange
		fsys := newFileFs(t)
		d := respond.NewResponder(respond.WithFs(fsys))
		w := httptest.NewRecorder()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := httptest.NewRequest(http.MethodGet, "/report", nil).WithContext(ctx)
		c := d.Context(w, r)

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{})

		// Assert
		require.Nil(t, err)
	})

	t.Run("Client-Abort-Reaches-The-Callback", func(t *testing.T) {
		// Arrange
		fsys := newFileFs(t)
		d := respond.NewResponder(respond.WithFs(fsys))
		w := httptest.NewRecorder()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := httptest.NewRequest(http.MethodGet, "/report", nil).WithContext(ctx)
		c := d.Context(w, r)

		var cbErr error

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{
			OnComplete: func(err error) { cbErr = err },
		})

		// Assert
		require.Nil(t, err)
		require.ErrorIs(t, cbErr, respond.ErrAborted)
	})

	t.Run("After-Terminal-Write-Errors", func(t *testing.T) {
		// Arrange
		c, _ := newContext(t, http.MethodGet, "/report", respond.WithFs(newFileFs(t)))
		require.Nil(t, c.End())

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{})

		// Assert
		require.ErrorIs(t, err, respond.ErrSent)
	})

	t.Run("Head-Sends-Headers-Only", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodHead, "/report", respond.WithFs(newFileFs(t)))

		// Act
		err := c.SendFile("/srv/pub/report.txt", respond.FileOptions{})

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 0, w.Body.Len())
		require.Equal(t, "17", w.Header().Get("Content-Length"))
	})
}

func TestContextDownload(t *testing.T) {
	t.Run("Suggests-The-Base-Name", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/download", respond.WithFs(newFileFs(t)))

		// Act
		err := c.Download("/srv/pub/report.txt", "", respond.FileOptions{})

		// Assert
		require.Nil(t, err)
		require.Equal(t, "attachment; filename=report.txt", w.Header().Get("Content-Disposition"))
		require.Equal(t, "quarterly numbers", w.Body.String())
	})

	t.Run("Custom-Filename", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/download", respond.WithFs(newFileFs(t)))

		// Act
		err := c.Download("/srv/pub/report.txt", "2026-q2.txt", respond.FileOptions{})

		// Assert
		require.Nil(t, err)
		require.Equal(t, "attachment; filename=2026-q2.txt", w.Header().Get("Content-Disposition"))
	})

	t.Run("Disposition-Cannot-Be-Overridden", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/download", respond.WithFs(newFileFs(t)))

		// Act
		err := c.Download("/srv/pub/report.txt", "", respond.FileOptions{
			Header: map[string]string{"Content-Disposition": "inline"},
		})

		// Assert
		require.Nil(t, err)
		require.Equal(t, "attachment; filename=report.txt", w.Header().Get("Content-Disposition"))
	})
}
