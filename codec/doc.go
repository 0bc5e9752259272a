/*
Package codec moves polymorphic values in and out of DynamoDB attribute maps.

Every encoded value carries two extra attributes:

	TypeId  the wire type-id, e.g. "::Demo::Widget"
	Kind    "object" or "exception"

Decoding looks the type-id up in the factory table, asks the factory for an
empty instance and populates it with attributevalue.UnmarshalMap:

	dec := codec.NewDecoder(factorytable.Current,
	    codec.WithUnknownTypePolicy(codec.UnknownTypeGeneric),
	)
	v, err := dec.Decode(item)

What happens when a type-id is not registered is the decoder's decision, not
the table's: UnknownTypeFail returns an errors.UnknownTypeError, while
UnknownTypeGeneric returns a map[string]any for objects and an
*UnknownException for exceptions.
*/
package codec
