package schema

// EnvKind identifies which tool manages an environment.
type EnvKind string

const (
	// EnvKindVenv is a directory-based virtual environment with an activation script.
	EnvKindVenv EnvKind = "venv"
	// EnvKindConda is a named environment managed by the conda tool.
	EnvKindConda EnvKind = "conda"
)

// Valid reports whether the kind is one of the two supported variants.
func (k EnvKind) Valid() bool {
	switch k {
	case EnvKindVenv, EnvKindConda:
		return true
	default:
		return false
	}
}

// Environment identifies a discovered environment.
type Environment struct {
	Kind EnvKind `json:"kind"`
	Name string  `json:"name"`
}

// Selection is the persisted "currently selected environment" record.
type Selection struct {
	Kind EnvKind `json:"kind"`
	Name string  `json:"name"`
}
