// Package server is the thin HTTP layer over a written snapshot: it
// returns the pre-computed documents verbatim and never recomputes
// anything.
package server

import (
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/archive"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/snapshot"
)

// Server serves one snapshot directory plus the run archive.
type Server struct {
	dir   string
	store *archive.Store

	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

// New builds the gin engine for a snapshot directory. store may be nil
// when no archive exists.
func New(dir string, store *archive.Store) *gin.Engine {
	s := &Server{
		dir:      dir,
		store:    store,
		limiters: make(map[string]*rate.Limiter),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	r.Use(s.rateLimit)

	r.GET("/health", s.health)
	r.GET("/runs", s.runs)
	r.GET("/api/:document", s.document)
	return r
}

// rateLimit applies a per-IP token bucket: 60 requests/min with burst
// headroom, the same shape as the upstream service's IP limiter.
func (s *Server) rateLimit(c *gin.Context) {
	s.mu.Lock()
	lim, ok := s.limiters[c.ClientIP()]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Second), 60)
		s.limiters[c.ClientIP()] = lim
	}
	s.mu.Unlock()

	if !lim.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}
	c.Next()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"snapshot":  s.dir,
		"documents": snapshot.Files,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) runs(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run archive not available"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "total": len(runs)})
}

// document serves one of the seven snapshot files verbatim. Anything
// outside the fixed allowlist is a 404, path traversal included.
func (s *Server) document(c *gin.Context) {
	name := c.Param("document")
	for _, known := range snapshot.Files {
		if name == known {
			c.File(filepath.Join(s.dir, name))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown document"})
}
