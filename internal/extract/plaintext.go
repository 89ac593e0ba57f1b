package extract

import "strings"

func init() {
	Register(plaintextExtractor{})
}

type plaintextExtractor struct{}

func (plaintextExtractor) Format() string {
	return "text"
}

func (plaintextExtractor) Extract(input string) (string, error) {
	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
