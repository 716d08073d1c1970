package envelope

import "github.com/fxamacker/cbor/v2"

// canonicalEncMode produces deterministic CBOR: the keys of every encoded
// map, including the field keys of encoded structs and Header.Custom, are
// sorted by the bytewise order of their encoded form (shorter keys first),
// so two logically-equal records always encode to the same bytes. Struct
// declaration order does not set the wire order of fields.
var canonicalEncMode = func() cbor.EncMode {
	opts := cbor.EncOptions{
		Sort:    cbor.SortCoreDeterministic,
		TimeTag: cbor.EncTagNone,
	}
	mode, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// decMode is permissive: it accepts map keys in any order, and tolerates
// unknown keys so that a reader never rejects a record written by a newer,
// field-extending writer.
var decMode = func() cbor.DecMode {
	opts := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	mode, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return mode
}()
