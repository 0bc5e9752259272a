/*
Package errors provides semantic error types for factorytable.

The factory table itself never returns errors: a lookup miss is reported as a
false second result. The types here are used by the layers around it (the codec
and the datastores) to report what went wrong, and can be checked with the
standard errors.Is() function or the provided helpers.

Common Errors:

	var (
	    ErrNotFound       = errors.New("value not found")
	    ErrInvalidInput   = errors.New("invalid input")
	    ErrUnknownType    = errors.New("unknown type")
	    ErrNoFactoryTable = errors.New("no factory table")
	    ErrMissingTypeID  = errors.New("missing type-id")
	)

Usage:

	v, err := dec.Decode(item)
	if err != nil {
	    if errors.IsUnknownType(err) {
	        // the type-id is not registered in this process
	    }
	    return nil, err
	}
*/
package errors
