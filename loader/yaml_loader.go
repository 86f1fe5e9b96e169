package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/crudforge/schema"
)

type yamlFile struct {
	Entities []schema.EntityRequest `yaml:"entities"`
}

// LoadEntitiesFromYAML reads a file of entity descriptions:
//
//	entities:
//	  - entityName: JobPost
//	    fields:
//	      - { name: title, type: string, required: true, maxLength: 100 }
func LoadEntitiesFromYAML(filename string) ([]schema.EntityRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading entities file: %w", err)
	}
	return ParseEntities(data)
}

// ParseEntities decodes entity descriptions from YAML bytes. Unknown keys are
// rejected so that typos such as "requried" do not pass silently.
func ParseEntities(data []byte) ([]schema.EntityRequest, error) {
	var yf yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}
	if len(yf.Entities) == 0 {
		return nil, fmt.Errorf("no entities defined")
	}
	return yf.Entities, nil
}
