package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestRouter_Setup(t *testing.T) {
	t.Run("mounts groups under the version prefix", func(t *testing.T) {
		engine := gin.New()

		catalog := NewDomainGroup("catalog", "/catalog")
		catalog.GET("/products", ok)
		sync := NewDomainGroup("sync", "/sync")
		sync.POST("", ok)

		NewRouter(engine).Register(catalog).Register(sync).Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/catalog/products", nil).Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/sync", nil).Code)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/catalog/products", nil).Code)
	})

	t.Run("honors a custom API version", func(t *testing.T) {
		engine := gin.New()

		orphans := NewDomainGroup("orphans", "/orphans")
		orphans.GET("/check", ok)

		NewRouter(engine, WithAPIVersion("v2")).Register(orphans).Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v2/orphans/check", nil).Code)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/orphans/check", nil).Code)
	})
}

func TestDomainGroup(t *testing.T) {
	t.Run("declares all verbs", func(t *testing.T) {
		engine := gin.New()

		g := NewDomainGroup("catalog", "/catalog")
		g.GET("/products", ok)
		g.POST("/products", ok)
		g.PUT("/products/:id/marketing", ok)
		g.DELETE("/products/:id", ok)

		NewRouter(engine).Register(g).Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/catalog/products", nil).Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/catalog/products", nil).Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPut, "/api/v1/catalog/products/42/marketing", nil).Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodDelete, "/api/v1/catalog/products/42", nil).Code)
	})

	t.Run("nests subgroups", func(t *testing.T) {
		engine := gin.New()

		catalog := NewDomainGroup("catalog", "/catalog")
		gallery := catalog.Group("gallery", "/gallery")
		gallery.GET("/:imageId", ok)

		NewRouter(engine).Register(catalog).Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/catalog/gallery/img-1", nil).Code)
	})

	t.Run("middleware wraps the whole subtree", func(t *testing.T) {
		engine := gin.New()

		guard := func(c *gin.Context) {
			if c.GetHeader("X-Admin") == "" {
				c.AbortWithStatus(http.StatusUnauthorized)
			}
		}
		admin := NewDomainGroup("backups", "/backups").Use(guard)
		admin.POST("/restore", ok)
		nested := admin.Group("inspect", "/inspect")
		nested.GET("", ok)

		NewRouter(engine).Register(admin).Setup()

		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/backups/restore", nil).Code)
		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/backups/inspect", nil).Code)

		withHeader := http.Header{"X-Admin": []string{"ops"}}
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/backups/restore", withHeader).Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/backups/inspect", withHeader).Code)
	})

	t.Run("exposes name and prefix", func(t *testing.T) {
		g := NewDomainGroup("taxonomy", "/taxonomy")
		assert.Equal(t, "taxonomy", g.Name())
		assert.Equal(t, "/taxonomy", g.Prefix())
	})
}
