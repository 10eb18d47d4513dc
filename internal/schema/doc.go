// Package schema validates entity configuration blocks.
//
// A Schema is an ordered list of Fields. Each Field names a key, says
// whether it is required, optional (with or without a default), generated
// or tied to a build feature, and carries a Validator that normalises the
// raw YAML value into its typed form. Validate walks the fields in order,
// collects every failure into Errors, and rejects keys no field declares.
//
//	s := schema.New(
//	    schema.GenerateID("id", "text_input"),
//	    schema.Optional("mode", schema.Enum(modes, true)).Default("AUTO"),
//	)
//	cfg, err := s.Validate(raw, schema.NewContext("mqtt"))
//
// Schemas compose with Extend; a later field with the same key replaces
// the earlier one.
package schema
