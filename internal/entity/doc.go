// Package entity provides the base every user-facing entity embeds:
// identifier, display name, object id, icon and the visibility flags.
//
// The base schema (name, icon, internal, disabled_by_default,
// entity_category) is shared by all entity kinds, and Setup applies a
// validated block to a Base.
package entity
