package config

// Catalog holds profile catalog settings
type Catalog struct {
	// Path is a JSON or YAML catalog file; empty means the bundled catalog
	Path string `koanf:"path"`
}

// Templates holds template asset settings
type Templates struct {
	// Dir is layered over the bundled assets when set
	Dir string `koanf:"dir"`
}

// Tools holds the external executables pyproject shells out to
type Tools struct {
	UV  string `koanf:"uv"`
	Git string `koanf:"git"`
}

// Defaults holds the values used when the user does not choose
type Defaults struct {
	PythonVersion string `koanf:"python_version"`
	Kind          string `koanf:"kind"`
	Profile       string `koanf:"profile"`
	Columns       int    `koanf:"columns"`
}

// Project holds the static manifest fields
type Project struct {
	Version     string `koanf:"version"`
	Description string `koanf:"description"`
}

// Runnable holds settings for executable entry points
type Runnable struct {
	Shebang string `koanf:"shebang"`
}

// Config is the merged pyproject configuration
type Config struct {
	Catalog   Catalog   `koanf:"catalog"`
	Templates Templates `koanf:"templates"`
	Tools     Tools     `koanf:"tools"`
	Defaults  Defaults  `koanf:"defaults"`
	Project   Project   `koanf:"project"`
	Runnable  Runnable  `koanf:"runnable"`
}
