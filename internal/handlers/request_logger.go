package handlers

import (
	"net"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// anonymizeIP zeroes the host part of an address: the last octet for IPv4,
// the lower 64 bits for IPv6.
func anonymizeIP(ipStr string) string {
	host, _, err := net.SplitHostPort(ipStr)
	if err == nil {
		ipStr = host
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "unknown_ip"
	}
	if ip.IsLoopback() {
		return "127.0.0.1"
	}
	if v4 := ip.To4(); v4 != nil {
		return net.IPv4(v4[0], v4[1], v4[2], 0).String()
	}

	masked := make(net.IP, net.IPv6len)
	copy(masked, ip.To16()[:8])
	return masked.String()
}

// requestLogger logs one line per request, at warn for 4xx and error for 5xx.
func (h *Handler) requestLogger(c *gin.Context) {
	requestID := c.GetHeader(headerRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(headerRequestID, requestID)

	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}

	status := c.Writer.Status()
	fields := []interface{}{
		"request_id", requestID,
		"remote_ip", anonymizeIP(c.Request.RemoteAddr),
		"method", c.Request.Method,
		"uri", c.Request.URL.RequestURI(),
		"status", status,
		"bytes", c.Writer.Size(),
		"latency", time.Since(start),
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "errors", c.Errors.String())
	}

	switch {
	case status >= 500:
		h.log.Errorw("http_request", fields...)
	case status >= 400:
		h.log.Warnw("http_request", fields...)
	default:
		h.log.Infow("http_request", fields...)
	}
}
