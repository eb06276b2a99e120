// Package http is the inbound HTTP adapter: the echo server exposing the
// dispatch API together with /health, /metrics and /swagger/*.
//
// Handlers translate between the wire types in internal/generated/servers
// and the application layer. Errors are answered with servers.Error:
//
//	409  dispatch id already used
//	404  dispatch run not found
//	400  request failed validation
//	500  anything else
package http
