// Package middlewares provides net/http middleware for the smsgate HTTP
// service.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing an upstream header when
// present. Pair it with RequestIDExtractor so every log line written with
// the request context carries request_id:
//
//	log := logger.New(os.Stdout, cfg, middlewares.RequestIDExtractor())
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID())
//
// # Recover
//
// Recover turns a handler panic into a logged 500 JSON response instead of
// a dropped connection.
//
//	r.Use(middlewares.Recover(log))
package middlewares
