package flowfile

import (
	"fmt"

	"github.com/specialistvlad/flowgraph/internal/payload"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) Format() Format { return FormatYAML }

func (yamlCodec) Decode(_ string, src []byte) (payload.Flow, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return payload.Flow{}, fmt.Errorf("%w: %v", payload.ErrInvalidPayload, err)
	}
	return payload.FromMap(doc)
}
