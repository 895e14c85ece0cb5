package samba

import "strings"

// parseKeyValues parses line-oriented "key : value" output, as produced by
// samba-tool show/info subcommands. Missing keys and stray whitespace are
// tolerated; later duplicates win.
func parseKeyValues(out string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values
}

// confSection is one "[name]" block of net conf output.
type confSection struct {
	Name   string
	Params map[string]string
}

// parseConfSections parses "[section]" headers followed by "key = value"
// lines, preserving section order. Parameter keys are lowercased.
func parseConfSections(out string) []confSection {
	var sections []confSection
	var current *confSection

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, confSection{
				Name:   line[1 : len(line)-1],
				Params: make(map[string]string),
			})
			current = &sections[len(sections)-1]
			continue
		}

		if current == nil {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		current.Params[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	return sections
}

// nonEmptyLines splits raw list output into trimmed non-empty lines.
func nonEmptyLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// confBool interprets the yes/no style values found in smb.conf parameters.
func confBool(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
