package diag

import (
	"log"

	"github.com/quailyquaily/toolschema/internal/jsonx"
)

// LogJSON logs value as JSON when enabled. fn, when set, receives the
// payload instead of the standard logger.
func LogJSON(enabled bool, fn func(label, payload string), label string, value any) {
	if !enabled {
		return
	}
	data, err := jsonx.Marshal(value)
	if err != nil {
		emit(fn, label, "<marshal error: "+err.Error()+">")
		return
	}
	emit(fn, label, string(data))
}

func LogText(enabled bool, fn func(label, payload string), label string, text string) {
	if !enabled {
		return
	}
	emit(fn, label, text)
}

func emit(fn func(label, payload string), label, payload string) {
	if fn != nil {
		fn(label, payload)
		return
	}
	log.Printf("%s: %s", label, payload)
}
