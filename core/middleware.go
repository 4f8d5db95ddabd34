package core

// Middleware transforms an event before delivery. Returning ok=false
// drops the event: the remaining middleware in the same chain never
// runs. A drop is intentional non-delivery, not an error.
type Middleware func(Event) (Event, bool)

// ApplyMiddleware runs the chain in registration order, feeding each
// middleware the previous one's output. The first drop short-circuits
// the rest of the chain.
func ApplyMiddleware(evt Event, chain []Middleware) (Event, bool) {
	for _, mw := range chain {
		var ok bool
		if evt, ok = mw(evt); !ok {
			return Event{}, false
		}
	}
	return evt, true
}
