// Package automation builds and runs the action lists attached to entity
// triggers.
//
// An automation is an ordered list of actions hung off a trigger. When the
// trigger fires, its positional values are bound to the automation's named
// arguments (a text input's on_value passes one string, "x") and the
// engine plays the actions one after another.
//
// Architecture:
//
//	┌────────────┐ Fire(ctx, "hello") ┌──────────┐  Dispatch  ┌──────────┐
//	│  Trigger   │───────────────────▶│Automation│───────────▶│  Engine  │
//	│(TriggerBase)│                   │ [actions]│            │ (engine) │
//	└────────────┘                    └──────────┘            └────┬─────┘
//	                                                               │
//	                               execution record (SQLite) ◀─────┤
//	                               WebSocket broadcast       ◀─────┤
//	                               observers (metrics)       ◀─────┘
//
// # Key Types
//
//   - Builder: turns a validated automation block into actions and attaches it
//   - TriggerBase: embeddable trigger that fans a value out to its automations
//   - Engine: plays actions sequentially and records each Execution
//   - SQLiteRepository: execution history
//
// # Actions
//
// The action catalog is a fixed table: logger.log, delay, mqtt.publish and
// text_input.set. String fields of logger.log, mqtt.publish and
// text_input.set are text/template templates over the trigger arguments:
//
//	on_value:
//	  then:
//	    - logger.log: "greeting is now {{.x}}"
//	    - delay: 500ms
//	    - mqtt.publish:
//	        topic: hallway/greeting
//	        payload: "{{.x}}"
//
// # Thread Safety
//
// Triggers, Builder and Engine are safe for concurrent use. Executions of
// the same automation may overlap.
package automation
