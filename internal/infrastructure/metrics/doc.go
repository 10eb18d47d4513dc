// Package metrics exposes node metrics in Prometheus format.
//
// Metrics owns a private registry (not the global default) holding the
// Go runtime and process collectors plus the textinput_* series:
//
//	textinput_state_changes_total{entity_id, source}
//	textinput_entities{domain}
//	textinput_automation_runs_total{status}
//	textinput_automation_duration_seconds{status}
//	textinput_mqtt_connected
//
// All methods are nil-safe so callers need not check whether metrics
// are enabled.
package metrics
