// Package web holds the browser client served at "/".
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var files embed.FS

// Register serves the embedded page and its assets.
func Register(r gin.IRouter) {
	static, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	r.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(static))
	})
	r.StaticFS("/static", http.FS(static))
}
