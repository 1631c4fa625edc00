package binder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingpanel/pkg/binder"
)

type request struct {
	OwnerID uuid.UUID `path:"ownerID"`
	Choice  int       `query:"choice"`
	Lang    *string   `query:"lang"`
	Tags    []string  `query:"tag"`
	Force   bool      `query:"force"`
	Skipped string    `query:"-" path:"-"`
}

func pathParams(params map[string]string) func(*http.Request, string) string {
	return func(_ *http.Request, name string) string { return params[name] }
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/?choice=1&lang=de&tag=a&tag=b&force=yes&Skipped=x", nil)
		var req request
		require.NoError(t, binder.Query()(r, &req))

		assert.Equal(t, 1, req.Choice)
		require.NotNil(t, req.Lang)
		assert.Equal(t, "de", *req.Lang)
		assert.Equal(t, []string{"a", "b"}, req.Tags)
		assert.True(t, req.Force)
		assert.Empty(t, req.Skipped)
	})

	t.Run("missing values keep zero", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		req := request{Choice: -1}
		require.NoError(t, binder.Query()(r, &req))
		assert.Equal(t, -1, req.Choice)
		assert.Nil(t, req.Lang)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?choice=first", nil)
		var req request
		assert.ErrorIs(t, binder.Query()(r, &req), binder.ErrInvalidQuery)
	})

	t.Run("target must be a struct pointer", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var req request
		assert.ErrorIs(t, binder.Query()(r, req), binder.ErrInvalidQuery)
		var n int
		assert.ErrorIs(t, binder.Query()(r, &n), binder.ErrInvalidQuery)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	t.Run("binds uuid", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var req request
		require.NoError(t, binder.Path(pathParams(map[string]string{"ownerID": id.String()}))(r, &req))
		assert.Equal(t, id, req.OwnerID)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var req request
		err := binder.Path(pathParams(map[string]string{"ownerID": "nope"}))(r, &req)
		assert.ErrorIs(t, err, binder.ErrInvalidPath)
	})

	t.Run("nil extractor", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var req request
		assert.ErrorIs(t, binder.Path(nil)(r, &req), binder.ErrInvalidPath)
	})
}
