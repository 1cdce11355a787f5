package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto645/internal/services"
	"lotto645/internal/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, *services.LottoService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewFileStore(filepath.Join(t.TempDir(), "bookmarks.json"))
	service := services.NewLottoService(nil, store, nil)

	templates, err := template.New("t").Parse(
		`{{define "bookmark_list.html"}}{{len .Bookmarks}} bookmarks{{end}}`)
	require.NoError(t, err)

	router := gin.New()
	NewHTTPHandler(service, templates, nil).RegisterRoutes(router)
	return router, service
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaveBookmark(t *testing.T) {
	router, service := newTestRouter(t)

	t.Run("Valid combination is saved", func(t *testing.T) {
		w := postForm(router, "/bookmarks", url.Values{
			"id":      {"random-1"},
			"numbers": {"1,2,3,4,5,6"},
			"reason":  {"random"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, service.Bookmarks(), 1)
		assert.Equal(t, 21, service.Bookmarks()[0].Sum)
	})

	t.Run("Duplicate numbers are rejected", func(t *testing.T) {
		w := postForm(router, "/bookmarks", url.Values{
			"id":      {"forged-1"},
			"numbers": {"1,1,2,3,4,5"},
			"reason":  {"random"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, service.Bookmarks(), 1, "forged combination must not be stored")
	})

	t.Run("Out-of-range number is rejected", func(t *testing.T) {
		w := postForm(router, "/bookmarks", url.Values{
			"id":      {"forged-2"},
			"numbers": {"1,2,3,4,5,46"},
			"reason":  {"random"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, service.Bookmarks(), 1)
	})

	t.Run("Missing id is rejected", func(t *testing.T) {
		w := postForm(router, "/bookmarks", url.Values{
			"numbers": {"1,2,3,4,5,6"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteBookmark_UnknownID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postForm(router, "/bookmarks/delete", url.Values{"id": {"does-not-exist"}})
	assert.Equal(t, http.StatusOK, w.Code)
}
