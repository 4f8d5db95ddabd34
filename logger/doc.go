// Package logger is the public dispatch API of logthis. Most users
// only need to import this package plus core for levels and fields.
//
// A Logger is immutable after construction: the level range, sink
// list, middleware chain, and static tags are fixed, and every With*
// operation returns a new Logger. This makes a Logger inherently safe
// for concurrent use without any locking on the dispatch path.
//
//	log, _ := logger.New().
//	    WithSinks(consoleSink, fileSink)
//	log, _ = log.WithLimits(core.Info.Number(), core.Fatal.Number())
//	log = log.WithTags("api")
//
//	log.Info("ready", core.Int("port", 8080))
//
// An event flows through the logger middleware (which may transform or
// drop it), the inclusive level-range filter, and tag stamping, then
// fans out to every sink in registration order. Each sink applies its
// own range override and middleware before writing. A failing sink is
// reported through the diagnostic surface and never affects the other
// sinks or the caller.
//
// Log returns the transformed event, so loggers chain:
//
//	if evt, ok := audit.Log(evt); ok {
//	    archive.Log(evt)
//	}
//
// The package-level functions delegate to a default logger that starts
// as a no-op; nothing is written until SetDefault installs a
// configured instance.
package logger
