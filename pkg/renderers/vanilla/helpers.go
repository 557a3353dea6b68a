package vanilla

import (
	"sort"
	"strings"
)

func controlID(sectionID, fieldID string) string {
	sectionID = strings.TrimSpace(sectionID)
	fieldID = strings.TrimSpace(fieldID)
	if sectionID == "" || fieldID == "" {
		return ""
	}
	return "rg-" + sectionID + "-" + fieldID
}

func sanitizeClassList(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
