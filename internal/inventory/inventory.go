package inventory

import (
	"errors"
	"fmt"

	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/internal/registry"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Build returns the inventory value. Libraries are expected in name order
// and capabilities in configuration order, as the registry reports them.
func Build(libs []*library.Library, failures map[string]error, report *registry.Report) cty.Value {
	libVals := make([]cty.Value, 0, len(libs))
	for _, lib := range libs {
		libVals = append(libVals, cty.ObjectVal(map[string]cty.Value{
			"name":        cty.StringVal(lib.Name),
			"path":        cty.StringVal(lib.Path),
			"builtin":     cty.BoolVal(lib.IsBuiltin()),
			"description": cty.StringVal(lib.Manifest.Description()),
			"classes":     stringList(lib.Manifest.ClassList()),
		}))
	}

	failed := make([]cty.Value, 0, len(failures))
	for _, name := range sortedKeys(failures) {
		failed = append(failed, cty.ObjectVal(map[string]cty.Value{
			"name":  cty.StringVal(name),
			"error": cty.StringVal(failures[name].Error()),
		}))
	}

	resolved := make([]cty.Value, 0, len(report.Resolved))
	for _, c := range report.Resolved {
		resolved = append(resolved, cty.ObjectVal(map[string]cty.Value{
			"name":      cty.StringVal(c.Name),
			"library":   cty.StringVal(c.Library),
			"class":     cty.StringVal(c.Class),
			"interface": cty.StringVal(c.Interface),
			"type":      cty.StringVal(c.Type.String()),
		}))
	}

	rejected := make([]cty.Value, 0, len(report.Rejected))
	for _, r := range report.Rejected {
		rejected = append(rejected, cty.ObjectVal(map[string]cty.Value{
			"name":      cty.StringVal(r.Name),
			"library":   cty.StringVal(r.Library),
			"class":     cty.StringVal(r.Class),
			"interface": cty.StringVal(r.Interface),
			"optional":  cty.BoolVal(r.Optional),
			"reason":    cty.StringVal(string(r.Reason)),
			"error":     cty.StringVal(errString(r.Err)),
		}))
	}

	return cty.ObjectVal(map[string]cty.Value{
		"libraries":        cty.TupleVal(libVals),
		"failed_libraries": cty.TupleVal(failed),
		"capabilities":     cty.TupleVal(resolved),
		"rejected":         cty.TupleVal(rejected),
	})
}

// JSON renders an inventory value. Object attributes are emitted in name
// order, so equal inventories produce identical bytes.
func JSON(val cty.Value) ([]byte, error) {
	if !val.IsWhollyKnown() || val.IsNull() {
		return nil, errors.New("inventory must be a known, non-null value")
	}
	out, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return out, nil
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
