package provision

// ToxEnv is the interpreter-selection meaning of a TOXENV value.  Values
// that don't select an interpreter (lint, packaging, py39-nightly, or an
// empty/unknown string) all map to ToxEnvOther, which is an explicit no-op
// rather than an implicit fallthrough.
type ToxEnv int

const (
	ToxEnvOther ToxEnv = iota
	ToxEnvPy27
	ToxEnvPy35
	ToxEnvPy36
	ToxEnvPy37
	ToxEnvPy38
)

// ParseToxEnv maps a raw TOXENV string to its interpreter-selection variant.
// There is no error case: anything unrecognized is ToxEnvOther.
func ParseToxEnv(s string) ToxEnv {
	switch s {
	case "py27":
		return ToxEnvPy27
	case "py35":
		return ToxEnvPy35
	case "py36":
		return ToxEnvPy36
	case "py37":
		return ToxEnvPy37
	case "py38":
		return ToxEnvPy38
	default:
		return ToxEnvOther
	}
}

func (e ToxEnv) String() string {
	switch e {
	case ToxEnvPy27:
		return "py27"
	case ToxEnvPy35:
		return "py35"
	case ToxEnvPy36:
		return "py36"
	case ToxEnvPy37:
		return "py37"
	case ToxEnvPy38:
		return "py38"
	default:
		return "other"
	}
}
