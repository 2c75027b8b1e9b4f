package python

import (
	"regexp"
	"strings"
)

var javaIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var javaReserved = map[string]struct{}{
	"abstract": {}, "boolean": {}, "break": {}, "class": {}, "double": {},
	"else": {}, "for": {}, "if": {}, "int": {}, "new": {}, "public": {},
	"return": {}, "static": {}, "String": {}, "void": {}, "while": {},
	"true": {}, "false": {}, "null": {},
}

// ValidClassName reports whether name can be used as a Java class name.
func ValidClassName(name string) bool {
	if _, ok := javaReserved[name]; ok {
		return false
	}
	return javaIdentifier.MatchString(name)
}

// Wrap places body inside a public class with a main method. Each body
// line is indented two levels.
func Wrap(class, body string) string {
	var sb strings.Builder
	sb.WriteString("public class " + class + " {\n")
	sb.WriteString("    public static void main(String[] args) {\n")
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		if line != "" {
			sb.WriteString("        ")
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("    }\n}\n")
	return sb.String()
}
