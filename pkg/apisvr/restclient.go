package apisvr

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"picon/internal/model"
	"picon/pkg/fetch"
)

const (
	marketLatestPath = "/market/latest"
	cryptoStatsPath  = "/cryptocurrency/stats"
)

// RESTClient reads economic indices and crypto market statistics.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient creates a client. insecure disables certificate verification;
// the public endpoint has shipped with a self-signed certificate.
func NewRESTClient(baseURL string, timeout time.Duration, insecure bool) *RESTClient {
	client := &http.Client{Timeout: timeout}
	if insecure {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		client.Transport = transport
	}

	return &RESTClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// GetMarkets fetches the economic index list.
func (c *RESTClient) GetMarkets(ctx context.Context) ([]model.Market, error) {
	var markets []model.Market
	if err := fetch.GetJSON(ctx, c.httpClient, c.baseURL+marketLatestPath, jsonHeader(), &markets, nil); err != nil {
		return nil, err
	}
	return markets, nil
}

// GetCryptoStats fetches greed/fear, global market cap and gas fees.
func (c *RESTClient) GetCryptoStats(ctx context.Context) (*model.Crypto, error) {
	var crypto model.Crypto
	if err := fetch.GetJSON(ctx, c.httpClient, c.baseURL+cryptoStatsPath, jsonHeader(), &crypto, nil); err != nil {
		return nil, err
	}
	return &crypto, nil
}

func jsonHeader() http.Header {
	return http.Header{"Accept": {"application/json"}}
}
