package coinmarketcap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"picon/internal/model"
	"picon/pkg/fetch"
)

const (
	listingsLatestPath = "/v1/cryptocurrency/listings/latest"
	apiKeyHeader       = "X-CMC_PRO_API_KEY"
)

// ListingParams are the query parameters of the listings endpoint.
type ListingParams struct {
	Start   int
	Limit   int
	Convert string
	Aux     string
}

// DefaultListingParams returns the top 100 assets quoted in USD.
func DefaultListingParams() ListingParams {
	return ListingParams{Start: 1, Limit: 100, Convert: "USD", Aux: "cmc_rank"}
}

func (p ListingParams) values() url.Values {
	q := url.Values{}
	q.Set("start", strconv.Itoa(p.Start))
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("convert", p.Convert)
	q.Set("aux", p.Aux)
	return q
}

type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetLatestListings fetches the latest listings snapshot.
// A body carrying status.error_message is returned as a snapshot, not an error;
// callers must check SoftError before trusting it. Equivalent to:
//
//	curl -H "X-CMC_PRO_API_KEY: $API_KEY" -H "Accept: application/json" \
//	  -d "start=1&limit=100&convert=USD&aux=cmc_rank" -G $BASE/v1/cryptocurrency/listings/latest
func (c *RESTClient) GetLatestListings(ctx context.Context, params ListingParams) (*model.Snapshot, error) {
	endpoint := c.baseURL + listingsLatestPath + "?" + params.values().Encode()

	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set(apiKeyHeader, c.apiKey)

	var snap model.Snapshot
	if err := fetch.GetJSON(ctx, c.httpClient, endpoint, header, &snap, statusErrorMessage); err != nil {
		return nil, err
	}

	return &snap, nil
}

// statusErrorMessage pulls status.error_message out of an error response body.
func statusErrorMessage(body []byte) string {
	var envelope struct {
		Status model.Status `json:"status"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Status.ErrorMessage
}
