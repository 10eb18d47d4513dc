// Package textinput implements the text input entity: a free-text value
// that users, MQTT and automations can set, and that fires on_value
// automations whenever it changes.
//
// A manifest entry looks like:
//
//	text_input:
//	  - name: "Hallway greeting"
//	    mode: string
//	    on_value:
//	      - logger.log: "greeting is now {{.x}}"
//
// Schema declares the accepted keys. Setup turns a validated entry into a
// registered *TextInput in a fixed order:
//
//  1. entity base (name, icon, flags)
//  2. mode
//  3. one StateTrigger per on_value entry, in declared order, each built
//     with a single string argument named x
//  4. the MQTT shadow, only when the entry carries an mqtt_id
//
// Setup reaches the rest of the node only through the EntitySetup,
// AutomationBuilder, MQTTRegistrar and Registry interfaces.
package textinput
