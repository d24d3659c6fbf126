package app

import (
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/modules/chain"
	"github.com/specialistvlad/flowgraph/modules/env_vars"
	"github.com/specialistvlad/flowgraph/modules/filetool"
	"github.com/specialistvlad/flowgraph/modules/http_client"
	"github.com/specialistvlad/flowgraph/modules/llm"
	"github.com/specialistvlad/flowgraph/modules/prompt"
	"github.com/specialistvlad/flowgraph/modules/toolkit"
)

// coreModules is the definitive list of all modules that are compiled into
// the flowgraph binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&llm.Module{},
	&filetool.Module{},
	&http_client.Module{},
	&toolkit.Module{},
	&prompt.Module{},
	&chain.Module{},
}
