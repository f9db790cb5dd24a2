// Package journal provides a parameter listener that appends one JSON line
// per parameter change to an io.Writer sink.
//
// The listener observes renames and value changes through the
// params.ParameterListener contract and serializes each change as a Record.
// Serialization and write failures are reported through an optional logger
// and never propagate into the notification path, so a broken sink cannot
// disturb the parameter it observes.
//
// Common usage pattern:
//
//	sink, err := os.Create("changes.jsonl")
//	if err != nil {
//		// handle error
//	}
//
//	listener, err := journal.NewListener("journal", sink, journal.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	parameter.AddListener(listener, params.Shared)
//	_ = parameter.SetValue(0.25) // appends {"event_id":...,"kind":"value-changed",...}
//
// Clones of a Listener share the sink, so copies of a journaled parameter
// keep appending to the same journal.
package journal
