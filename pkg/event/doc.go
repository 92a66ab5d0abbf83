// Package event defines the kernel-internal event record exchanged between
// the kernel modules of the stack.
//
// Events are small typed envelopes: a Type selecting the destination module
// and an Arg payload whose concrete type depends on the Type. The kernel
// event queue (external to this core) routes each event to the module that
// owns its type; a module receiving an event of a type it does not handle
// reports a routing bug rather than silently dropping it.
package event
