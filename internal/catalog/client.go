// Package catalog looks up new releases through the Product Advertising API.
package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Defaults for the US marketplace.
const (
	DefaultHost        = "webservices.amazon.com"
	DefaultRegion      = "us-east-1"
	DefaultMarketplace = "www.amazon.com"
)

const (
	signingService = "ProductAdvertisingAPI"
	searchItemsOp  = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
	searchItemsURI = "/paapi5/searchitems"

	partnerType = "Associates"
	sortBy      = "NewestArrivals"

	// CodeNoResults is reported when the category has no matching items.
	CodeNoResults = "NoResults"

	maxResponseBytes = 1 << 20
)

// Resources is the fixed response-detail selector: only titles are needed.
var Resources = []string{"ItemInfo.Title"}

// ErrFetch classifies every failed lookup.
var ErrFetch = errors.New("catalog fetch failed")

// APIError is an error reported in the API response body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API error %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}

// Options configures a Client.
type Options struct {
	AccessKey   string
	SecretKey   string
	PartnerTag  string
	Host        string
	Region      string
	Marketplace string
	Timeout     time.Duration

	// Endpoint overrides the https://{Host} base URL.
	Endpoint string
}

// Client issues signed SearchItems calls.
type Client struct {
	opts   Options
	http   *http.Client
	creds  aws.CredentialsProvider
	signer *v4.Signer
	now    func() time.Time
}

// New creates a Client. Credentials are not validated.
func New(opts Options) *Client {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Region == "" {
		opts.Region = DefaultRegion
	}
	if opts.Marketplace == "" {
		opts.Marketplace = DefaultMarketplace
	}
	if opts.Endpoint == "" {
		opts.Endpoint = "https://" + opts.Host
	}

	return &Client{
		opts: opts,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		creds:  credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		signer: v4.NewSigner(),
		now:    time.Now,
	}
}

// searchItemsRequest is the SearchItems request body.
type searchItemsRequest struct {
	PartnerTag   string   `json:"PartnerTag"`
	PartnerType  string   `json:"PartnerType"`
	Marketplace  string   `json:"Marketplace"`
	BrowseNodeID string   `json:"BrowseNodeId"`
	SortBy       string   `json:"SortBy"`
	Resources    []string `json:"Resources"`
}

// searchItemsResponse is the subset of the SearchItems response the skill reads.
type searchItemsResponse struct {
	SearchResult *struct {
		Items []struct {
			ASIN     string `json:"ASIN"`
			ItemInfo *struct {
				Title *struct {
					DisplayValue string `json:"DisplayValue"`
				} `json:"Title"`
			} `json:"ItemInfo"`
		} `json:"Items"`
	} `json:"SearchResult"`
	Errors []struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Errors"`
}

// NewReleases returns the titles of the newest items in the category, in the
// order returned by the API. A single attempt is made; every failure wraps ErrFetch.
func (c *Client) NewReleases(ctx context.Context, categoryID string) ([]string, error) {
	payload, err := json.Marshal(searchItemsRequest{
		PartnerTag:   c.opts.PartnerTag,
		PartnerType:  partnerType,
		Marketplace:  c.opts.Marketplace,
		BrowseNodeID: categoryID,
		SortBy:       sortBy,
		Resources:    Resources,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %w", ErrFetch, err)
	}

	req, err := c.newSignedRequest(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrFetch, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrFetch, err)
	}

	var resp searchItemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response (status %d): %w", ErrFetch, res.StatusCode, err)
	}

	for _, e := range resp.Errors {
		if e.Code == CodeNoResults {
			return []string{}, nil
		}
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetch, &APIError{
			StatusCode: res.StatusCode,
			Code:       resp.Errors[0].Code,
			Message:    resp.Errors[0].Message,
		})
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, res.StatusCode)
	}
	if resp.SearchResult == nil {
		return nil, fmt.Errorf("%w: response has no SearchResult", ErrFetch)
	}

	titles := make([]string, 0, len(resp.SearchResult.Items))
	for _, item := range resp.SearchResult.Items {
		if item.ItemInfo == nil || item.ItemInfo.Title == nil {
			continue
		}
		titles = append(titles, item.ItemInfo.Title.DisplayValue)
	}
	return titles, nil
}

// newSignedRequest builds the SearchItems POST and signs it with SigV4.
func (c *Client) newSignedRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	url := strings.TrimRight(c.opts.Endpoint, "/") + searchItemsURI
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", searchItemsOp)

	creds, err := c.creds.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve credentials: %w", err)
	}

	sum := sha256.Sum256(payload)
	if err := c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), signingService, c.opts.Region, c.now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}
	return req, nil
}
