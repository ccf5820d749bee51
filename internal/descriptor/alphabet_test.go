package descriptor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanProtein(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		wantChanged bool
	}{
		{in: "MKVLA", want: "MKVLA", wantChanged: false},
		{in: "MKVLA1", want: "MKVLA", wantChanged: true},
		{in: "mkvla", want: "", wantChanged: true},
		{in: "M*K-V", want: "MKV", wantChanged: true},
		{in: "", want: "", wantChanged: false},
		{in: "XBZ", want: "X", wantChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, changed := CleanProtein(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
			assert.LessOrEqual(t, len(got), len(tt.in))
			for _, r := range got {
				assert.True(t, strings.ContainsRune(ProteinAlphabet, r))
			}
		})
	}
}

func TestCleanDNA(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		wantChanged bool
	}{
		{in: "atcgn", want: "ATCGN", wantChanged: false},
		{in: "ACGT", want: "ACGT", wantChanged: false},
		{in: "AC GT\n", want: "ACGT", wantChanged: true},
		{in: "ACGU", want: "ACG", wantChanged: true},
		{in: "xyz", want: "", wantChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, changed := CleanDNA(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, strings.ToUpper(got), got)
			for _, r := range got {
				assert.True(t, strings.ContainsRune(DNAAlphabet, r))
			}
		})
	}
}
