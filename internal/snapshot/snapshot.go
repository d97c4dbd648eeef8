package snapshot

import (
	"fmt"
	"os"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"gopkg.in/yaml.v3"
)

// Load reads and parses the snapshot file at path.
func Load(path string) (model.RawInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}

	raw, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", path, err)
	}
	return raw, nil
}

// Parse decodes snapshot YAML.
func Parse(data []byte) (model.RawInputs, error) {
	var doc map[string]model.RawCheckpointInput
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	raw := make(model.RawInputs, len(doc))
	for k, v := range doc {
		stage, err := model.ParseStage(k)
		if err != nil {
			return nil, err
		}
		if _, dup := raw[stage]; dup {
			return nil, fmt.Errorf("stage %s listed twice", stage)
		}
		raw[stage] = v
	}
	return raw, nil
}

// Marshal encodes raw as snapshot YAML in stage order.
func Marshal(raw model.RawInputs) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, stage := range model.Stages {
		in, ok := raw[stage]
		if !ok {
			continue
		}

		var val yaml.Node
		if err := val.Encode(in); err != nil {
			return nil, err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: stage.Key()},
			&val,
		)
	}

	return yaml.Marshal(root)
}
