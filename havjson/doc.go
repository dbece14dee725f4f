// Package havjson implements a data-interchange engine that reads and
// writes two related formats: a textual object-notation format (TEXT)
// and a corresponding length-prefixed binary format (BIN) modelled on
// the widely deployed binary JSON encoding.
//
// Both formats materialize into the same polymorphic Value tree. TEXT
// is handled by a streaming Lexer feeding a recursive-descent Builder;
// BIN is transformed into a textual intermediate by a decoder and fed
// through the same Lexer/Builder, so there is exactly one structural
// validator rather than two.
//
//	v, err := havjson.Parse([]byte(`{"a":1}`), havjson.KindText)
//	out := havjson.ToText(v, false)
//
// The engine is single-threaded and synchronous: no goroutines, no
// timers, no suspension points. Value trees may be freely aliased
// within one goroutine; the library performs no synchronization of
// its own across goroutines.
package havjson
