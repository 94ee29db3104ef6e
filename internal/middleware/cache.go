package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"
	cacheVariantKey = "cache_variant"

	// CacheHeader reports HIT or MISS on the cached dashboard snapshot.
	CacheHeader = "X-Cache"
)

// WithResponseMeta gives every request a meta map that handlers fill and response.JSON
// renders. processing_time_ms is added unless the handler timed itself.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
		meta := ensureMeta(c)
		if _, exists := meta["processing_time_ms"]; !exists {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit marks whether the dashboard was served from Redis, in meta and X-Cache.
func SetCacheHit(c *gin.Context, hit bool) {
	meta := ensureMeta(c)
	meta[cacheHitKey] = hit
	if c == nil {
		return
	}
	status := "MISS"
	if hit {
		status = "HIT"
	}
	c.Header(CacheHeader, status)
}

// SetCacheVariant records which per-gender dashboard entry answered the request.
func SetCacheVariant(c *gin.Context, variant string) {
	if variant == "" {
		return
	}
	ensureMeta(c)[cacheVariantKey] = variant
}

// ExtractMeta returns the meta map stored on the context, or nil.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
