package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/pathviz/internal/solver"
)

// ExportJSON writes fx in the solver's JSON shapes to path.
func ExportJSON(path string, fx *solver.Fixture) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, fx)
}

func WriteJSON(w io.Writer, fx *solver.Fixture) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(fx)
}
