// Package flowfile loads flows from files. The format is chosen by file
// extension: JSON (.json), YAML (.yaml, .yml) or the HCL flow dialect (.hcl):
//
//	node "ChatOpenAI-1" {
//	  type         = "ChatOpenAI"
//	  base_classes = ["BaseLanguageModel"]
//	  template     = { model_name = { type = "str", value = "gpt-4o-mini" } }
//	}
//
//	edge {
//	  source        = "ChatOpenAI-1"
//	  target        = "JsonToolkit-2"
//	  target_handle = "BaseLanguageModel|llm|JsonToolkit-2"
//	}
//
// JSON and YAML files hold the same {nodes, edges} payload graph.FromPayload
// accepts, optionally wrapped in a "data" key.
package flowfile
