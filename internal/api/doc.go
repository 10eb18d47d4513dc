// Package api provides the HTTP REST API and WebSocket server of a text
// input node.
//
// It exposes the registered text inputs, their value history and the
// automation execution log to dashboards and scripts, pushes value
// changes to WebSocket clients, and serves Prometheus metrics.
//
// Routes:
//
//	GET  /metrics                              Prometheus exposition
//	GET  /api/v1/health                        liveness and dependency checks
//	GET  /api/v1/text_inputs                   list (internal entities hidden)
//	GET  /api/v1/text_inputs/{id}              one text input
//	PUT  /api/v1/text_inputs/{id}/state        {"value": "..."}
//	GET  /api/v1/text_inputs/{id}/history      ?limit=N
//	GET  /api/v1/automations/executions        ?automation_id=...&limit=N
//	GET  /api/v1/ws                            WebSocket
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
