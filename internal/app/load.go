package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/nodebridge/internal/ctxlog"
	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/specialistvlad/nodebridge/internal/runtime/hclrt"
	"github.com/specialistvlad/nodebridge/internal/runtime/luart"
)

// Extensions lists the content file extensions the app can load.
var Extensions = []string{".hcl", ".lua"}

// load evaluates a content file with the runtime matching its extension.
func (a *App) load(ctx context.Context, path string) (*node.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)

	switch ext := filepath.Ext(path); ext {
	case ".hcl":
		logger.Debug("Evaluating with HCL runtime.", "vars", len(a.config.Vars))
		return hclrt.New(hclrt.WithStringVariables(a.config.Vars)).EvalFile(ctx, path)
	case ".lua":
		logger.Debug("Evaluating with Lua runtime.")
		return luart.New().EvalFile(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported content file %q: extension must be one of %v", path, Extensions)
	}
}
