// Package api exposes the classifier over HTTP with gin.
//
// Routes:
//
//	GET  /health      liveness probe
//	GET  /categories  configured categories
//	POST /classify    classify a prompt
//	GET  /metrics     Prometheus exposition (when a metrics handler is set)
package api
