package inventory

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/zclconf/go-cty/cty"
)

// WriteText renders an inventory value as aligned, human-readable tables:
// libraries, their classes, then capabilities.
func WriteText(w io.Writer, val cty.Value) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "LIBRARY\tPATH\tCLASSES\tDESCRIPTION")
	for _, lib := range elements(val, "libraries") {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", str(lib, "name"), str(lib, "path"), lib.GetAttr("classes").LengthInt(), str(lib, "description"))
	}
	for _, lib := range elements(val, "failed_libraries") {
		fmt.Fprintf(tw, "%s\t-\t-\tFAILED: %s\n", str(lib, "name"), str(lib, "error"))
	}

	if classes := ClassTable(val); classes != "" {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "CLASS")
		fmt.Fprintln(tw, classes)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CAPABILITY\tLIBRARY\tCLASS\tINTERFACE\tSTATUS")
	for _, c := range elements(val, "capabilities") {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\tresolved\n", str(c, "name"), str(c, "library"), str(c, "class"), str(c, "interface"))
	}
	for _, c := range elements(val, "rejected") {
		status := "rejected: " + str(c, "reason")
		if c.GetAttr("optional").True() {
			status += " (optional)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", str(c, "name"), str(c, "library"), str(c, "class"), str(c, "interface"), status)
	}

	return tw.Flush()
}

// ClassTable lists the classes of every library, one per line, as
// "library/class".
func ClassTable(val cty.Value) string {
	var lines []string
	for _, lib := range elements(val, "libraries") {
		name := str(lib, "name")
		for it := lib.GetAttr("classes").ElementIterator(); it.Next(); {
			_, class := it.Element()
			lines = append(lines, name+"/"+class.AsString())
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func elements(val cty.Value, attr string) []cty.Value {
	if !val.Type().IsObjectType() || !val.Type().HasAttribute(attr) {
		return nil
	}
	coll := val.GetAttr(attr)
	if coll.IsNull() || coll.LengthInt() == 0 {
		return nil
	}
	return coll.AsValueSlice()
}

func str(obj cty.Value, attr string) string {
	return obj.GetAttr(attr).AsString()
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
