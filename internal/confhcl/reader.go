package confhcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/skyrig/chassis/internal/conftree"
)

// RootName is the name given to the synthetic root section that holds
// the file's top-level attributes and blocks.
const RootName = "config"

// Read parses resolved configuration text and returns the configuration
// tree. The name is used for diagnostics only.
func Read(name, text string) (*conftree.Section, error) {
	file, diags := hclsyntax.ParseConfig([]byte(text), name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing configuration %s: %w", name, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parsing configuration %s: unexpected body type", name)
	}

	root := conftree.NewRoot(RootName, "")
	if err := fillSection(root, body); err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", name, err)
	}
	return root, nil
}

func fillSection(section *conftree.Section, body *hclsyntax.Body) error {
	// hclsyntax keeps attributes in a map; iterate in source order so
	// the tree is deterministic.
	for _, attr := range attrsInSourceOrder(body) {
		value, err := literalString(attr.Expr)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		section.AddAttr(attr.Name, value)
	}

	for _, block := range body.Blocks {
		child := section.AddSection(block.Type, strings.Join(block.Labels, "."))
		if err := fillSection(child, block.Body); err != nil {
			return err
		}
	}
	return nil
}

func attrsInSourceOrder(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	for i := 0; i < len(attrs); i++ {
		for j := i + 1; j < len(attrs); j++ {
			if attrs[j].SrcRange.Start.Byte < attrs[i].SrcRange.Start.Byte {
				attrs[i], attrs[j] = attrs[j], attrs[i]
			}
		}
	}
	return attrs
}

// literalString evaluates an attribute expression with no variables in
// scope and converts the result to its string form.
func literalString(expr hclsyntax.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("expression is not a self-contained literal: %w", diags)
	}
	if val.IsNull() {
		return "", nil
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("value of type %s cannot be represented as a string", val.Type().FriendlyName())
	}
	return converted.AsString(), nil
}
