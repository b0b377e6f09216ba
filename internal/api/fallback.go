package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// fallback serves files of the built front-end and answers every other
// GET with the app shell so client-side routes resolve. The request path
// is cleaned against "/" first, so dot segments never leave StaticDir.
func (s *Server) fallback(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
		return
	}

	file := filepath.Join(s.cfg.StaticDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	if serveStatic(c, file) {
		return
	}
	if serveStatic(c, filepath.Join(s.cfg.StaticDir, "index.html")) {
		return
	}
	c.String(http.StatusNotFound, "front-end bundle not found")
}

// serveStatic writes the regular file at name and reports whether it did.
// http.ServeFile is avoided because it rejects any raw path containing
// "..", even though the path handed to it here is already resolved.
func serveStatic(c *gin.Context, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}
