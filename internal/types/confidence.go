package types

import "encoding/json"

// ConfidenceSummary mirrors the per-job summary confidences file written by the prediction tool.
// Every field is optional; absent keys and values of an unexpected type decode to nil.
type ConfidenceSummary struct {
	PTM                *float64     `json:"ptm"`
	IPTM               *float64     `json:"iptm"`
	RankingScore       *float64     `json:"ranking_score"`
	FractionDisordered *float64     `json:"fraction_disordered"`
	HasClash           any          `json:"has_clash"`
	ChainPTM           []*float64   `json:"chain_ptm"`
	ChainPairIPTM      [][]*float64 `json:"chain_pair_iptm"`
	ChainPairPAEMin    [][]*float64 `json:"chain_pair_pae_min"`
}

// UnmarshalJSON decodes each field on its own so one mistyped value only nulls that field.
// Only a document that is not a JSON object is an error.
func (s *ConfidenceSummary) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*s = ConfidenceSummary{
		PTM:                decodeNumber(fields["ptm"]),
		IPTM:               decodeNumber(fields["iptm"]),
		RankingScore:       decodeNumber(fields["ranking_score"]),
		FractionDisordered: decodeNumber(fields["fraction_disordered"]),
		ChainPTM:           decodeVector(fields["chain_ptm"]),
		ChainPairIPTM:      decodeMatrix(fields["chain_pair_iptm"]),
		ChainPairPAEMin:    decodeMatrix(fields["chain_pair_pae_min"]),
	}

	var clash any
	if err := json.Unmarshal(fields["has_clash"], &clash); err == nil {
		switch clash.(type) {
		case bool, float64:
			s.HasClash = clash
		}
	}
	return nil
}

func decodeNumber(raw json.RawMessage) *float64 {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

func decodeVector(raw json.RawMessage) []*float64 {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]*float64, len(items))
	for i, item := range items {
		out[i] = decodeNumber(item)
	}
	return out
}

func decodeMatrix(raw json.RawMessage) [][]*float64 {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	out := make([][]*float64, len(rows))
	for i, row := range rows {
		out[i] = decodeVector(row)
	}
	return out
}

// ConfidenceRow is one flattened row of the combined report. Nil means null.
type ConfidenceRow struct {
	ModelName               string
	RankingScore            *float64
	PTM                     *float64
	IPTM                    *float64
	InterfaceChains01IPTM   *float64
	InterfaceChains01PAEMin *float64
	Chain0PTM               *float64
	Chain1PTM               *float64
	FractionDisordered      *float64
	HasClash                any
}

// ReportColumns is the fixed column order of the combined report.
var ReportColumns = []string{
	"model_name",
	"ranking_score",
	"ptm",
	"iptm",
	"interface_chains_0_1_iptm",
	"interface_chains_0_1_pae_min",
	"chain_0_ptm",
	"chain_1_ptm",
	"fraction_disordered",
	"has_clash",
}

// Values returns the row's cells in ReportColumns order.
func (r ConfidenceRow) Values() []any {
	return []any{
		r.ModelName,
		r.RankingScore,
		r.PTM,
		r.IPTM,
		r.InterfaceChains01IPTM,
		r.InterfaceChains01PAEMin,
		r.Chain0PTM,
		r.Chain1PTM,
		r.FractionDisordered,
		r.HasClash,
	}
}
