package sequences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/af-prep/internal/fetch"
	"github.com/jonathan/af-prep/internal/logger"
	"go.uber.org/zap"
)

// Lookup stages, used in LookupError.
const (
	StageHGNC    = "hgnc"
	StageUniProt = "uniprot"
)

// ClientConfig configures the two remote services.
type ClientConfig struct {
	HGNCBaseURL    string
	UniProtBaseURL string
	Timeout        time.Duration
	HTTPClient     *http.Client
}

// Client resolves gene symbols to sequences.
type Client struct {
	hgncBaseURL    string
	uniprotBaseURL string
	opts           *fetch.Options
}

// NewClient creates a client. Each request is bounded by cfg.Timeout (fetch.DefaultTimeout if zero).
func NewClient(cfg ClientConfig) *Client {
	opts := fetch.DefaultOptions()
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	opts.Client = cfg.HTTPClient

	return &Client{
		hgncBaseURL:    strings.TrimRight(cfg.HGNCBaseURL, "/"),
		uniprotBaseURL: strings.TrimRight(cfg.UniProtBaseURL, "/"),
		opts:           opts,
	}
}

type hgncDoc struct {
	Symbol     string   `json:"symbol"`
	UniProtIDs []string `json:"uniprot_ids"`
}

type hgncResponse struct {
	Response struct {
		NumFound int       `json:"numFound"`
		Docs     []hgncDoc `json:"docs"`
	} `json:"response"`
}

// LookupUniProtIDs returns the UniProt cross-references of the first HGNC record for symbol.
// Zero matches and an empty cross-reference list are both reported as a *LookupError without a cause.
func (c *Client) LookupUniProtIDs(ctx context.Context, symbol string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/fetch/symbol/%s", c.hgncBaseURL, url.PathEscape(strings.ToUpper(symbol)))

	result, err := fetch.URL(ctx, reqURL, c.opts.WithHeader("Accept", "application/json"))
	if err != nil {
		return nil, &LookupError{Gene: symbol, Stage: StageHGNC, Message: "request failed", Cause: err}
	}

	var decoded hgncResponse
	if err := json.Unmarshal([]byte(result.Body), &decoded); err != nil {
		return nil, &LookupError{Gene: symbol, Stage: StageHGNC, Message: "malformed response", Cause: err}
	}

	if decoded.Response.NumFound <= 0 || len(decoded.Response.Docs) == 0 {
		return nil, &LookupError{Gene: symbol, Stage: StageHGNC, Message: "no matching records"}
	}

	ids := decoded.Response.Docs[0].UniProtIDs
	if len(ids) == 0 {
		return nil, &LookupError{Gene: symbol, Stage: StageHGNC, Message: "no UniProt cross-references"}
	}
	return ids, nil
}

// FetchFasta returns the raw FASTA body for a UniProtKB accession.
func (c *Client) FetchFasta(ctx context.Context, accession string) (string, error) {
	reqURL := fmt.Sprintf("%s/uniprotkb/%s?format=fasta", c.uniprotBaseURL, url.PathEscape(accession))

	result, err := fetch.URL(ctx, reqURL, c.opts)
	if err != nil {
		return "", &LookupError{Gene: accession, Stage: StageUniProt, Message: "request failed", Cause: err}
	}
	return result.Body, nil
}

// Resolve runs both lookups for one gene symbol.
func (c *Client) Resolve(ctx context.Context, symbol string) (string, error) {
	ids, err := c.LookupUniProtIDs(ctx, symbol)
	if err != nil {
		return "", err
	}

	accession := ids[0]
	body, err := c.FetchFasta(ctx, accession)
	if err != nil {
		return "", err
	}

	sequence, ok := ParseFastaSequence(body)
	if !ok {
		return "", &LookupError{Gene: symbol, Stage: StageUniProt, Message: "response for " + accession + " is not FASTA"}
	}
	return sequence, nil
}

// FetchSequence resolves symbol and reports ok=false on any failure.
// Failures are logged, never returned.
func (c *Client) FetchSequence(ctx context.Context, symbol string) (string, bool) {
	sequence, err := c.Resolve(ctx, symbol)
	if err == nil {
		return sequence, true
	}

	var lookupErr *LookupError
	if errors.As(err, &lookupErr) && lookupErr.Cause == nil {
		logger.Info("No sequence for gene", zap.String("gene", symbol), zap.String("reason", lookupErr.Message))
	} else {
		logger.Warn("Error fetching sequence", zap.String("gene", symbol), zap.Error(err))
	}
	return "", false
}
