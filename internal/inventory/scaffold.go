package inventory

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/manifest"
	"github.com/zclconf/go-cty/cty"
)

// Classifier names the interface a class of a manifest should be requested as.
type Classifier interface {
	Classify(m manifest.Manifest, class string) string
}

// Scaffold writes a host configuration declaring every library and one
// capability per exported class. A root-typed key is skipped when its
// interface-typed twin is present.
func Scaffold(libs []*library.Library, classifier Classifier) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, lib := range libs {
		block := body.AppendNewBlock("library", []string{lib.Name})
		block.Body().SetAttributeValue("path", cty.StringVal(lib.Path))
		body.AppendNewline()
	}

	for _, lib := range libs {
		for _, class := range lib.Manifest.ClassList() {
			if id, ok := strings.CutSuffix(class, manifest.RootSuffix); ok && lib.Manifest.Has(id) {
				continue
			}
			iface := classifier.Classify(lib.Manifest, class)
			if iface == "" {
				continue
			}
			block := body.AppendNewBlock("capability", []string{lib.Name + "_" + class})
			block.Body().SetAttributeValue("library", cty.StringVal(lib.Name))
			block.Body().SetAttributeValue("class", cty.StringVal(class))
			block.Body().SetAttributeValue("interface", cty.StringVal(iface))
			body.AppendNewline()
		}
	}

	return hclwrite.Format(f.Bytes())
}
