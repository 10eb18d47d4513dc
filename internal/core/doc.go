// Package core holds the node-wide registries and the component catalog.
//
// IDRegistry maps configuration identifiers to the objects declared under
// them. App adds the per-kind entity collections that the API and the
// MQTT layer iterate. Catalog is the fixed list of components a manifest
// may contain, each with its schema and setup function.
//
// All types are safe for concurrent use.
package core
