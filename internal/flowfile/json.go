package flowfile

import (
	"github.com/specialistvlad/flowgraph/internal/payload"
)

type jsonCodec struct{}

func (jsonCodec) Format() Format { return FormatJSON }

func (jsonCodec) Decode(_ string, src []byte) (payload.Flow, error) {
	return payload.Parse(src)
}
