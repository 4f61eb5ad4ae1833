package jsonpath

import "github.com/tidwall/gjson"

// NullMarker is the literal text the dashboard sends for cleared free-text
// fields.
const NullMarker = "null"

// TextState classifies a node read as text.
type TextState int

const (
	// TextEmpty is an absent node or an empty string.
	TextEmpty TextState = iota
	// TextNullMarker is a JSON null or the string "null".
	TextNullMarker
	// TextPresent is any other value.
	TextPresent
)

func (s TextState) String() string {
	switch s {
	case TextNullMarker:
		return "null-marker"
	case TextPresent:
		return "present"
	default:
		return "empty"
	}
}

// Text is a node coerced to text, keeping track of which of the three
// states it came from.
type Text struct {
	s     string
	state TextState
}

// Text coerces the node to text. Objects and arrays are kept as their raw
// JSON.
func (v Value) Text() Text {
	if !v.Exists() {
		return Text{}
	}
	var s string
	switch v.r.Type {
	case gjson.Null:
		return Text{s: NullMarker, state: TextNullMarker}
	case gjson.JSON:
		s = v.r.Raw
	default:
		s = v.Str()
	}
	switch s {
	case "":
		return Text{}
	case NullMarker:
		return Text{s: s, state: TextNullMarker}
	}
	return Text{s: s, state: TextPresent}
}

// State reports which of the three text states t is in.
func (t Text) State() TextState {
	return t.state
}

// Present reports whether t carries real content.
func (t Text) Present() bool {
	return t.state == TextPresent
}

// String returns the coerced text; "null" for a null marker.
func (t Text) String() string {
	return t.s
}
