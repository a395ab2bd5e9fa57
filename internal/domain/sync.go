package domain

import "encoding/json"

// ProgressEvent is one decoded frame of the sync progress stream.
//
// The server's event schema is not contractual and has changed between
// versions, so the payload is kept loose: Raw holds the verbatim JSON and
// accessors pull optional well-known fields out of it. Events exist only
// for the duration of processing one frame.
type ProgressEvent struct {
	Raw json.RawMessage
}

// Field returns a top-level field of the event when the payload is a JSON
// object. The second return is false for missing fields and for non-object
// payloads.
func (e ProgressEvent) Field(key string) (any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(e.Raw, &obj); err != nil {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// Type returns the event's "type" field, or "" when absent.
func (e ProgressEvent) Type() string {
	v, ok := e.Field("type")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
