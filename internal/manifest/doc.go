// Package manifest loads the entity manifest: a YAML document whose
// top-level keys are component domains and whose values are lists of
// entries.
//
//	text_input:
//	  - name: "Hallway greeting"
//	    id: greeting
//	  - name: "Status note"
//	    mode: string
//
// Every entry is validated before any entity is created, so a manifest
// with one bad entry creates nothing. Entities are then created in
// document order.
package manifest
