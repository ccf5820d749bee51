package sequences

import "strings"

// ParseFastaSequence returns the residues of a single-record FASTA body:
// every line after the header, concatenated. ok is false unless the body starts with '>'.
func ParseFastaSequence(body string) (string, bool) {
	if !strings.HasPrefix(body, ">") {
		return "", false
	}

	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	var sb strings.Builder
	for _, line := range lines[1:] {
		sb.WriteString(line)
	}
	return sb.String(), true
}
