// Package descriptor joins complex records, protein sequences and alignment
// files into per-complex job descriptor files.
package descriptor

import (
	"encoding/json"

	"github.com/jonathan/af-prep/internal/types"
)

// NewJobDescriptor returns the descriptor for one protein-DNA complex.
// Sequences are expected to be cleaned already.
func NewJobDescriptor(uniqueID, protein, msaPath, dna string) types.JobDescriptor {
	return types.JobDescriptor{
		Name:       uniqueID,
		ModelSeeds: []int{types.DefaultModelSeed},
		Sequences: []types.SequenceEntry{
			{Protein: &types.ProteinChain{
				ID:              types.ProteinChainID,
				Sequence:        protein,
				UnpairedMSAPath: msaPath,
				PairedMSA:       "",
				Templates:       []types.Template{},
			}},
			{DNA: &types.DNAChain{
				ID:       types.DNAChainID,
				Sequence: dna,
			}},
		},
		Dialect: types.JobDialect,
		Version: types.JobVersion,
	}
}

// Marshal encodes d with a two-space indent.
func Marshal(d types.JobDescriptor) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
