// Package middleware provides HTTP middleware for the analysis API server.
//
// All middleware follows the standard pattern: func(http.Handler) http.Handler
// so layers can be chained: handler = Recovery(logger)(RequestID()(mux)).
package middleware
