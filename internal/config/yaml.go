package config

import "gopkg.in/yaml.v3"

type yamlDocument struct {
	Pipeline PipelineConfig         `yaml:"pipeline"`
	Models   map[string]ModelConfig `yaml:"models"`
}

// MarshalYAML renders the Config in the same layout Load reads.
func (c *Config) MarshalYAML() (interface{}, error) {
	doc := yamlDocument{
		Pipeline: PipelineConfig{
			PrimaryModels: make([]string, 0, len(c.primaryModels)),
			ChairmanModel: c.chairmanModel.String(),
		},
		Models: make(map[string]ModelConfig, len(knownModels)),
	}
	for _, id := range c.primaryModels {
		doc.Pipeline.PrimaryModels = append(doc.Pipeline.PrimaryModels, id.String())
	}
	for _, id := range knownModels {
		if mc := *c.slot(id); mc != nil {
			doc.Models[id.String()] = *mc
		}
	}
	return doc, nil
}

var _ yaml.Marshaler = (*Config)(nil)
