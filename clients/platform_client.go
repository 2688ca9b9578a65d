package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kudoshq/recognition-bff/models"
)

// UpstreamError carries a platform API failure back to the caller. Message
// is the server's human-readable message verbatim when one was provided,
// else a generic fallback, so it is always safe to render to the user.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
}

const genericUpstreamMessage = "Something went wrong. Please try again."

// PlatformClient is the BFF's view of the recognition platform REST API.
// Every method is a plain request/response JSON call; the platform is the
// authority on every mutation.
type PlatformClient interface {
	ListPrizes(ctx context.Context, userID string) ([]models.CatalogItem, error)
	GetPrize(ctx context.Context, userID, prizeID string) (*models.CatalogItem, error)
	Redeem(ctx context.Context, userID, prizeID, variantID string) (*models.Redemption, error)

	ListRedemptions(ctx context.Context, userID string, q models.ListQuery) ([]models.Redemption, error)
	GetRedemption(ctx context.Context, userID, redemptionID string) (*models.Redemption, error)
	CancelRedemption(ctx context.Context, userID, redemptionID, reason string) (int64, error)
	UpdateRedemptionStatus(ctx context.Context, userID, redemptionID, status string) error

	GetBalance(ctx context.Context, userID string) (*models.Balance, error)
	SendCompliment(ctx context.Context, userID string, req models.SendComplimentRequest) (*models.Compliment, error)

	CreatePrize(ctx context.Context, userID string, body []byte) ([]byte, int, error)
	UpdatePrize(ctx context.Context, userID, prizeID string, body []byte) ([]byte, int, error)
}

type platformClient struct {
	baseURL string
	client  *http.Client
}

// NewPlatformClient builds a client with a bounded request timeout. All
// request lifecycle policy lives here, not in the calling services.
func NewPlatformClient(baseURL string, timeout time.Duration) PlatformClient {
	return &platformClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *platformClient) do(ctx context.Context, method, path, userID string, query url.Values, body interface{}, out interface{}) error {
	u := p.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeUpstreamError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeUpstreamError extracts the server's message field, falling back to
// a generic string when the body is not the expected shape.
func decodeUpstreamError(resp *http.Response) error {
	msg := genericUpstreamMessage
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if json.Unmarshal(body, &payload) == nil {
			if payload.Message != "" {
				msg = payload.Message
			} else if payload.Error != "" {
				msg = payload.Error
			}
		}
	}
	return &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
}

func (p *platformClient) ListPrizes(ctx context.Context, userID string) ([]models.CatalogItem, error) {
	var out struct {
		Items []models.CatalogItem `json:"items"`
	}
	if err := p.do(ctx, http.MethodGet, "/prizes", userID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (p *platformClient) GetPrize(ctx context.Context, userID, prizeID string) (*models.CatalogItem, error) {
	var out models.CatalogItem
	if err := p.do(ctx, http.MethodGet, "/prizes/"+prizeID, userID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *platformClient) Redeem(ctx context.Context, userID, prizeID, variantID string) (*models.Redemption, error) {
	body := map[string]string{"prize_id": prizeID}
	if variantID != "" {
		body["variant_id"] = variantID
	}
	var out models.Redemption
	if err := p.do(ctx, http.MethodPost, "/redemptions", userID, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *platformClient) ListRedemptions(ctx context.Context, userID string, q models.ListQuery) ([]models.Redemption, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.From != "" {
		query.Set("from", q.From)
	}
	if q.To != "" {
		query.Set("to", q.To)
	}
	query.Set("offset", strconv.Itoa(q.Offset))
	query.Set("limit", strconv.Itoa(q.Limit))

	var out struct {
		Items []models.Redemption `json:"items"`
	}
	if err := p.do(ctx, http.MethodGet, "/redemptions", userID, query, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (p *platformClient) GetRedemption(ctx context.Context, userID, redemptionID string) (*models.Redemption, error) {
	var out models.Redemption
	if err := p.do(ctx, http.MethodGet, "/redemptions/"+redemptionID, userID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *platformClient) CancelRedemption(ctx context.Context, userID, redemptionID, reason string) (int64, error) {
	body := map[string]string{"reason": reason}
	var out struct {
		RefundedCoins int64 `json:"refunded_coins"`
	}
	if err := p.do(ctx, http.MethodPost, "/redemptions/"+redemptionID+"/cancel", userID, nil, body, &out); err != nil {
		return 0, err
	}
	return out.RefundedCoins, nil
}

func (p *platformClient) UpdateRedemptionStatus(ctx context.Context, userID, redemptionID, status string) error {
	body := map[string]string{"status": status}
	return p.do(ctx, http.MethodPatch, "/redemptions/"+redemptionID+"/status", userID, nil, body, nil)
}

func (p *platformClient) GetBalance(ctx context.Context, userID string) (*models.Balance, error) {
	var out models.Balance
	if err := p.do(ctx, http.MethodGet, "/balance", userID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *platformClient) SendCompliment(ctx context.Context, userID string, req models.SendComplimentRequest) (*models.Compliment, error) {
	var out models.Compliment
	if err := p.do(ctx, http.MethodPost, "/compliments", userID, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePrize and UpdatePrize are thin admin passthroughs: the BFF does not
// model the admin payloads, it relays them and lets the platform validate.
func (p *platformClient) CreatePrize(ctx context.Context, userID string, body []byte) ([]byte, int, error) {
	return p.passthrough(ctx, http.MethodPost, "/prizes", userID, body)
}

func (p *platformClient) UpdatePrize(ctx context.Context, userID, prizeID string, body []byte) ([]byte, int, error) {
	return p.passthrough(ctx, http.MethodPut, "/prizes/"+prizeID, userID, body)
}

func (p *platformClient) passthrough(ctx context.Context, method, path, userID string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return respBody, resp.StatusCode, nil
}
