package descriptor

import "strings"

// Residue alphabets accepted by the prediction tool.
const (
	ProteinAlphabet = "ACDEFGHIKLMNPQRSTVWYX"
	DNAAlphabet     = "ATCGN"
)

// CleanProtein keeps only characters of ProteinAlphabet. changed reports whether any were dropped.
func CleanProtein(seq string) (string, bool) {
	cleaned := keepOnly(seq, ProteinAlphabet)
	return cleaned, len(cleaned) != len(seq)
}

// CleanDNA upper-cases seq and keeps only characters of DNAAlphabet.
// changed reports whether any characters were dropped; case folding alone does not count.
func CleanDNA(seq string) (string, bool) {
	cleaned := keepOnly(strings.ToUpper(seq), DNAAlphabet)
	return cleaned, len(cleaned) != len(seq)
}

func keepOnly(s, alphabet string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(alphabet, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
