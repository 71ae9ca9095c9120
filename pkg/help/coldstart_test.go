package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestColdstartYAML(t *testing.T) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(ColdstartYAML), &doc); err != nil {
		t.Fatalf("ColdstartYAML is not valid YAML: %v", err)
	}

	for _, key := range []string{"inputs", "commands", "line_tags", "section_tags", "config_file"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("ColdstartYAML missing %q", key)
		}
	}
}
