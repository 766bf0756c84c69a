package exchange

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

const defaultCBRURL = "https://www.cbr.ru/scripts/XML_daily.asp"

// CBRProvider reads the Central Bank of Russia daily rates feed. The feed is
// quoted in RUB and encoded as windows-1251.
type CBRProvider struct {
	url        string
	httpClient *http.Client
}

type cbrValCurs struct {
	Date    string      `xml:"Date,attr"`
	Valutes []cbrValute `xml:"Valute"`
}

type cbrValute struct {
	CharCode string `xml:"CharCode"`
	Nominal  string `xml:"Nominal"`
	Value    string `xml:"Value"`
}

// NewCBRProvider creates a CBR feed provider.
func NewCBRProvider(url string, timeout time.Duration) *CBRProvider {
	url = strings.TrimSpace(url)
	if url == "" {
		url = defaultCBRURL
	}
	return &CBRProvider{url: url, httpClient: newHTTPClient(timeout)}
}

// Name identifies the provider in logs.
func (p *CBRProvider) Name() string { return "cbr" }

// Rates fetches the feed and returns rates against base.
func (p *CBRProvider) Rates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request rates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates feed returned status %d", resp.StatusCode)
	}

	rates, err := parseCBR(resp.Body)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(base, "RUB") {
		return rates, nil
	}
	return rebase(rates, strings.ToUpper(base))
}

// parseCBR decodes the feed into units of each currency per one RUB.
func parseCBR(r io.Reader) (map[string]decimal.Decimal, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "windows-1251") {
			return charmap.Windows1251.NewDecoder().Reader(input), nil
		}
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	var doc cbrValCurs
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode rates feed: %w", err)
	}

	rates := map[string]decimal.Decimal{"RUB": one}
	for _, v := range doc.Valutes {
		value, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v.Value), ",", "."))
		if err != nil || !value.IsPositive() {
			continue
		}
		nominal, err := decimal.NewFromString(strings.TrimSpace(v.Nominal))
		if err != nil || !nominal.IsPositive() {
			continue
		}
		// The feed gives RUB per Nominal units; store units per RUB.
		rates[strings.ToUpper(strings.TrimSpace(v.CharCode))] = nominal.Div(value)
	}
	if len(rates) == 1 {
		return nil, errRateMissing
	}
	return rates, nil
}
