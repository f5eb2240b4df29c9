package recurso

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Recursos []Recurso `yaml:"recursos"`
}

// LoadFixtures reads a YAML document of the form:
//
//	recursos:
//	  - id: 1
//	    nome: Sala 101
//	    descricao: "Projetor e **quadro branco**."
//	    ativo: true
func LoadFixtures(r io.Reader) ([]Recurso, error) {
	var file fixtureFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []Recurso{}, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	seen := make(map[int64]struct{}, len(file.Recursos))
	for _, item := range file.Recursos {
		if item.ID < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidID, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("duplicate recurso id %d in fixtures", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	if file.Recursos == nil {
		return []Recurso{}, nil
	}
	return file.Recursos, nil
}
