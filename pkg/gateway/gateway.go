package gateway

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

func (c *implClient) SendSMS(ctx context.Context, req SMSRequest) (*Receipt, error) {
	if req.To == "" {
		return nil, ErrAddressRequired
	}
	return c.post(ctx, smsPath, req)
}

func (c *implClient) SendPush(ctx context.Context, req PushRequest) (*Receipt, error) {
	if req.Token == "" {
		return nil, ErrAddressRequired
	}
	return c.post(ctx, pushPath, req)
}

// PostWebhook posts payload as JSON to an absolute URL. Webhooks are not
// rate limited.
func (c *implClient) PostWebhook(ctx context.Context, url string, payload any) error {
	if url == "" {
		return ErrAddressRequired
	}
	var eb errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(&eb).
		Post(url)
	if err != nil {
		c.l.Errorf(ctx, "pkg.gateway.PostWebhook.Post: %v", err)
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return rejection(resp, eb)
	}
	return nil
}

func (c *implClient) post(ctx context.Context, path string, body any) (*Receipt, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var (
		receipt Receipt
		eb      errorBody
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&receipt).
		SetError(&eb).
		Post(path)
	if err != nil {
		c.l.Errorf(ctx, "pkg.gateway.post.Post(%s): %v", path, err)
		return nil, fmt.Errorf("call gateway: %w", err)
	}
	if resp.IsError() {
		c.l.Warnf(ctx, "pkg.gateway.post: %s returned %d", path, resp.StatusCode())
		return nil, rejection(resp, eb)
	}
	return &receipt, nil
}

func rejection(resp *resty.Response, eb errorBody) error {
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	if msg == "" {
		msg = resp.Status()
	}
	return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), msg)
}
