package carrier

import (
	"embed"
)

//go:embed carriers.csv
var bundled embed.FS

// DefaultPath is the name of the bundled table inside Bundled().
const DefaultPath = "carriers.csv"

// Bundled exposes the embedded carrier tables.
func Bundled() embed.FS {
	return bundled
}

// Default returns a loader for the bundled carrier table.
func Default() Loader {
	return File(bundled, DefaultPath)
}
