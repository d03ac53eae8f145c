package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/geounits/internal/config"
	"github.com/vk/geounits/internal/ctxlog"
	"github.com/vk/geounits/internal/fsutil"
	"github.com/vk/geounits/internal/schema"
)

// Extension is the file extension of worksheet files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL worksheet loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every worksheet under paths, in lexical order per directory
// and argument order across paths, into one Sheet per file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(Extension, paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(schema.Worksheet)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		sheet, err := l.translateSheet(file, content)
		if err != nil {
			return nil, err
		}
		logger.Debug("Worksheet loaded.", "file", file, "rules", len(sheet.Rules), "lets", len(sheet.Lets))
		model.Sheets = append(model.Sheets, sheet)
	}

	logger.Debug("HCL loading complete.", "sheets", len(model.Sheets), "rules", len(model.Rules()))
	return model, nil
}
