package interp

import "strconv"

// Kind tags the runtime Value union (§3: "a tagged sum over
// {int32, float64, string, bool}"). Nothing in this interpreter ever
// constructs a KindBool value directly — literal true/false lower to
// LOAD_INT (see pkg/ir) — but the tag is kept so the union stays closed
// over the same four alternatives the original variant carried.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
)

// Value is one runtime value. The zero Value is KindInt 0, matching a
// default-constructed std::variant<int,double,string,bool> whose first
// alternative is int.
type Value struct {
	Kind Kind
	I    int32
	F    float64
	S    string
	B    bool
}

func Int(v int32) Value    { return Value{Kind: KindInt, I: v} }
func Float(v float64) Value { return Value{Kind: KindFloat, F: v} }
func Str(v string) Value   { return Value{Kind: KindString, S: v} }
func Bool(v bool) Value    { return Value{Kind: KindBool, B: v} }

// concatString stringifies v the way CONCAT does: to_string for numerics
// (fixed six decimal places for floats, matching std::to_string(double)),
// true/false for bool, passthrough for string.
func concatString(v Value) string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(int(v.I))
	case KindFloat:
		return strconv.FormatFloat(v.F, 'f', 6, 64)
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	default:
		return v.S
	}
}

// printString stringifies v the way PRINT does: the same numeric/bool
// rendering as concatString, except floats match std::cout's default
// formatting (6 significant digits, not to_string's fixed six decimals).
func printString(v Value) string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(int(v.I))
	case KindFloat:
		return strconv.FormatFloat(v.F, 'g', 6, 64)
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	default:
		return v.S
	}
}

// graphicsString mirrors the toString lambda main.cpp defines locally for
// SCREEN's title argument: string passthrough, to_string for numerics,
// "" for anything else (bool never reaches this path).
func graphicsString(v Value) string {
	switch v.Kind {
	case KindString:
		return v.S
	case KindInt:
		return strconv.Itoa(int(v.I))
	case KindFloat:
		return strconv.FormatFloat(v.F, 'f', 6, 64)
	default:
		return ""
	}
}
