package backend

import "context"

type NewsletterResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// SubscribeNewsletter signs an email up. The backend answers 409 when the
// address is already subscribed; that surfaces as an APIError with Conflict.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) (*NewsletterResult, error) {
	var result NewsletterResult
	if err := c.post(ctx, "/newsletter/subscribe", emailRequest{Email: email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UnsubscribeNewsletter(ctx context.Context, email string) (*NewsletterResult, error) {
	var result NewsletterResult
	if err := c.post(ctx, "/newsletter/unsubscribe", emailRequest{Email: email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
