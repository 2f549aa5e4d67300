package ccip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// maxResponseSize bounds a gateway response body.
const maxResponseSize = 4 << 20

// Gateway answers an OffchainLookup with the bytes to pass to its callback.
type Gateway interface {
	Fetch(ctx context.Context, lookup *OffchainLookup) ([]byte, error)
}

// HTTPGateway fetches answers over HTTP as described in EIP-3668. URLs are
// tried in order; a 4xx answer stops the search.
type HTTPGateway struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPGateway creates an HTTPGateway. A nil client uses http.DefaultClient.
func NewHTTPGateway(client *http.Client, logger *zap.Logger) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{client: client, logger: logger}
}

type gatewayRequest struct {
	Data   string `json:"data"`
	Sender string `json:"sender"`
}

type gatewayResponse struct {
	Data    string `json:"data"`
	Message string `json:"message"`
}

// Fetch implements Gateway.
func (g *HTTPGateway) Fetch(ctx context.Context, lookup *OffchainLookup) ([]byte, error) {
	if len(lookup.URLs) == 0 {
		return nil, ErrNoGateway
	}

	sender := strings.ToLower(lookup.Sender.Hex())
	data := hexutil.Encode(lookup.CallData)

	var lastErr error
	for _, url := range lookup.URLs {
		out, err := g.fetch(ctx, url, sender, data)
		if err == nil {
			return out, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var gwErr *GatewayError
		if errors.As(err, &gwErr) && gwErr.Permanent() {
			return nil, err
		}
		g.logger.Debug("ccip gateway failed, trying next",
			zap.String("url", url),
			zap.Error(err),
		)
		lastErr = err
	}
	return nil, lastErr
}

func (g *HTTPGateway) fetch(ctx context.Context, url, sender, data string) ([]byte, error) {
	href := strings.ReplaceAll(url, "{sender}", sender)
	href = strings.ReplaceAll(href, "{data}", data)

	var (
		req *http.Request
		err error
	)
	if strings.Contains(url, "{data}") {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, href, nil)
	} else {
		body, marshalErr := json.Marshal(gatewayRequest{Data: data, Sender: sender})
		if marshalErr != nil {
			return nil, marshalErr
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, href, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("ccip: build request for %s: %w", url, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ccip: gateway %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ccip: read gateway %s: %w", url, err)
	}

	var payload gatewayResponse
	decodeErr := json.Unmarshal(raw, &payload)

	if resp.StatusCode != http.StatusOK {
		return nil, &GatewayError{URL: url, Status: resp.StatusCode, Message: payload.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("ccip: gateway %s: invalid json: %w", url, decodeErr)
	}

	out, err := hexutil.Decode(payload.Data)
	if err != nil {
		return nil, fmt.Errorf("ccip: gateway %s: invalid data: %w", url, err)
	}
	return out, nil
}
