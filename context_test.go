package respond_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintleaf-web/respond"
)

func TestContextStatus(t *testing.T) {
	tcs := []struct {
		name string
		code int
		err  error
	}{
		{"Lower-Bound", 100, nil},
		{"Upper-Bound", 999, nil},
		{"Typical", 204, nil},
		{"Below-Range", 99, respond.ErrRange},
		{"Above-Range", 1000, respond.ErrRange},
		{"Zero", 0, respond.ErrRange},
		{"Negative", -1, respond.ErrRange},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c, _ := newContext(t, http.MethodGet, "/")

			// Act
			err := c.Status(tc.code)

			// Assert
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Equal(t, http.StatusOK, c.StatusCode())
				return
			}

			require.Nil(t, err)
			require.Equal(t, tc.code, c.StatusCode())
		})
	}
}

func TestContextStatusCodeDefault(t *testing.T) {
	// Arrange
	c, _ := newContext(t, http.MethodGet, "/")

	// Assert
	require.Equal(t, http.StatusOK, c.StatusCode())
}

func TestContextEnd(t *testing.T) {
	t.Run("Writes-Status-Without-Body", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/")
		require.Nil(t, c.Status(http.StatusAccepted))

		// Act
		err := c.End()

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Equal(t, 0, w.Body.Len())
		require.Equal(t, "", w.Header().Get("Content-Length"))
	})

	t.Run("Second-Terminal-Write-Errors", func(t *testing.T) {
		// Arrange
		c, _ := newContext(t, http.MethodGet, "/")
		require.Nil(t, c.End())

		// Act
		err := c.End()

		// Assert
		require.ErrorIs(t, err, respond.ErrSent)
	})

	t.Run("Send-After-End-Errors", func(t *testing.T) {
		// Arrange
		c, w := newContext(t, http.MethodGet, "/")
		require.Nil(t, c.End())

		// Act
		err := c.Send("too late")

		// Assert
		require.ErrorIs(t, err, respond.ErrSent)
		require.Equal(t, 0, w.Body.Len())
	})
}
