/*
Package factorytable provides the process-wide type-factory table used by the RPC
runtime to rebuild remote exceptions and dynamically-typed objects from the
type-id carried on the wire.

The library is split into a few packages:
  - registry: the reference counted factory table, its Lifecycle and Module descriptions
  - codec: encodes values with their type-id and decodes them through the table
  - datastore: persistence of polymorphic values (DynamoDB, in-memory mock)
  - config: YAML / .env / environment configuration and logger setup

This package holds the single shared Lifecycle of the process.

Basic Usage:

	// Generated code describes its types...
	var Module = registry.NewModule("Demo").
	    Exception("::Demo::NotFoundException", registry.ExceptionOf[NotFoundException]()).
	    Object("::Demo::Widget", registry.ObjectOf[Widget]())

	// ...and the program loads it explicitly.
	loaded := factorytable.Load(Module)
	defer loaded.Unload()

	// The unmarshaling side looks factories up through the shared handle.
	dec := codec.NewDecoder(factorytable.Current)
	v, err := dec.Decode(item)

For more information, see the documentation at https://github.com/suparena/factorytable
*/
package factorytable
