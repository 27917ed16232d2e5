// SPDX-License-Identifier: MIT

// Package server exposes the decomposition engine as a JSON HTTP API:
//
//	POST /v1/decompose  {"method": "lu", "matrix": [[...]]} or {"method": ..., "text": "..."}
//	GET  /v1/methods
//	GET  /v1/examples
//	GET  /health
//	GET  /metrics       Prometheus exposition
//
// Shape and parse errors answer 400, decomposition failures 422 and a
// client over its token bucket 429. Results are cached by input bits when a
// cache.Store is configured.
package server
