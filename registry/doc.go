/*
Package registry holds the factory table used to reconstruct polymorphic values
from a type-id decoded off the wire.

The table keeps two independent mappings, one for remote exceptions and one for
objects. Each entry is reference counted so that independently loaded modules
can register and deregister the same type-id without stepping on each other:

	table.AddObjectFactory("::Demo::Widget", registry.ObjectOf[Widget]())
	f, ok := table.GetObjectFactory("::Demo::Widget")
	table.RemoveObjectFactory("::Demo::Widget")

The first factory registered for a type-id is kept until the last registrant
removes it; later registrations only bump the count.

Lifecycle:
A Lifecycle owns the shared table. The first Acquire creates it, the Release of
the last outstanding Lease destroys it:

	lease := lc.Acquire()
	defer lease.Release()
	lease.Table().AddExceptionFactory(...)

Generated code usually describes its types with a Module and loads it
explicitly instead of relying on init() ordering:

	var Module = registry.NewModule("Demo").
	    Exception("::Demo::NotFoundException", registry.ExceptionOf[NotFoundException]()).
	    Object("::Demo::Widget", registry.ObjectOf[Widget]())

	loaded := Module.Load(lc)
	defer loaded.Unload()

All operations are safe for concurrent use.
*/
package registry
