package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/forgego/internal/config"
	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top level of every plan file. Any block other than
// construct is rejected by the decoder.
type fileRoot struct {
	Constructs []*constructBlock `hcl:"construct,block"`
}

// constructBlock is a single `construct "<strategy>" "<name>" { ... }` block.
// Its attributes are read by hand so that absence can be told apart from null.
type constructBlock struct {
	Strategy string   `hcl:"strategy,label"`
	Name     string   `hcl:"name,label"`
	Body     hcl.Body `hcl:",remain"`
}

// Load parses every .hcl file found under paths, in the order found, and
// returns the validated plan.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	plan := &config.Plan{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Constructs {
			entry, err := translateConstruct(ctx, block)
			if err != nil {
				return nil, err
			}
			plan.Entries = append(plan.Entries, entry)
		}
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "entries", len(plan.Entries))
	return plan, nil
}
