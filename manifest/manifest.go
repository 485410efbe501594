package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/errors"
	"github.com/eagerlink/eagerlink/section"
)

// evalContext exposes scheduling constants to manifest expressions, so a
// binding can say e.g. "priority = max_priority - 1".
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"max_priority":     cty.NumberUIntVal(uint64(section.MaxPriority)),
			"default_priority": cty.NumberUIntVal(uint64(section.MaxPriority)),
		},
	}
}

// hclManifest is the top-level structure of a bindings file for decoding.
type hclManifest struct {
	Types    []*hclType    `hcl:"type,block"`
	Bindings []*hclBinding `hcl:"binding,block"`
}

// hclBinding declares one eager global.
type hclBinding struct {
	Name     string `hcl:"name,label"`
	Type     string `hcl:"type"`
	Init     string `hcl:"init"`
	Priority *int   `hcl:"priority,optional"`
	Public   bool   `hcl:"public,optional"`
}

// hclType declares a named external value type. The toolchain cannot
// inspect such types, so layout and capabilities are stated here.
type hclType struct {
	Name         string   `hcl:"name,label"`
	Size         *int     `hcl:"size,optional"`
	Align        *int     `hcl:"align,optional"`
	Capabilities []string `hcl:"capabilities,optional"`
	Teardown     string   `hcl:"teardown,optional"`
}

// Load parses one manifest file into validated binding descriptors.
func Load(path string) ([]binding.Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.ParseFailed("manifest "+path, diags)
	}

	var mf hclManifest
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &mf); diags.HasErrors() {
		return nil, errors.ParseFailed("manifest "+path, diags)
	}
	return resolve(&mf)
}

// Parse decodes manifest source held in memory. filename only labels
// diagnostics.
func Parse(src []byte, filename string) ([]binding.Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.ParseFailed("manifest "+filename, diags)
	}

	var mf hclManifest
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &mf); diags.HasErrors() {
		return nil, errors.ParseFailed("manifest "+filename, diags)
	}
	return resolve(&mf)
}

func resolve(mf *hclManifest) ([]binding.Descriptor, error) {
	externs, err := resolveTypes(mf.Types)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(mf.Bindings))
	ds := make([]binding.Descriptor, 0, len(mf.Bindings))
	for _, hb := range mf.Bindings {
		if seen[hb.Name] {
			return nil, errors.Duplicate(errors.PhaseParse, "binding", hb.Name)
		}
		seen[hb.Name] = true

		ty, err := binding.ParseType(hb.Type, externs)
		if err != nil {
			return nil, err
		}

		priority := section.MaxPriority
		if hb.Priority != nil {
			p := *hb.Priority
			if p < 0 || p > int(section.MaxPriority) {
				return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
					Binding(hb.Name).
					Value(p).
					Detail("priority must be in [0, %d]", section.MaxPriority).
					Build()
			}
			priority = uint16(p)
		}

		vis := binding.Private
		if hb.Public {
			vis = binding.Public
		}

		d := binding.Descriptor{
			Name:       hb.Name,
			Type:       ty,
			Init:       hb.Init,
			Priority:   priority,
			Visibility: vis,
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func resolveTypes(hts []*hclType) (map[string]*binding.Type, error) {
	externs := make(map[string]*binding.Type, len(hts))
	for _, ht := range hts {
		if _, dup := externs[ht.Name]; dup {
			return nil, errors.Duplicate(errors.PhaseParse, "type", ht.Name)
		}

		info := &binding.ExternInfo{Teardown: ht.Teardown}
		if ht.Size != nil {
			if *ht.Size < 0 {
				return nil, errors.InvalidData(errors.PhaseParse, []string{"type", ht.Name}, "negative size")
			}
			info.Size = uint32(*ht.Size)
			info.SizeKnown = true
		}
		if ht.Align != nil {
			if *ht.Align <= 0 {
				return nil, errors.InvalidData(errors.PhaseParse, []string{"type", ht.Name}, "alignment must be positive")
			}
			info.Align = uint32(*ht.Align)
		}
		for _, c := range ht.Capabilities {
			switch c {
			case "share":
				info.Share = true
			case "fixed":
				// layout capability is implied by a declared size
			default:
				return nil, errors.InvalidData(errors.PhaseParse, []string{"type", ht.Name},
					"unknown capability "+c)
			}
		}

		externs[ht.Name] = &binding.Type{
			Kind:   binding.KindExtern,
			Name:   ht.Name,
			Extern: info,
		}
	}
	return externs, nil
}
