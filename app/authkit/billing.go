package authkit

import (
	"context"
	"net/http"
)

// SubscriptionService covers the billing surface the service proxies to the
// payment provider.
type SubscriptionService struct {
	client *Client
}

// List returns an organization's subscriptions.
func (s *SubscriptionService) List(ctx context.Context, organizationID string) ([]Subscription, error) {
	var out struct {
		Subscriptions []Subscription `json:"subscriptions"`
	}
	if err := s.client.get(ctx, "/organizations/"+organizationID+"/subscriptions", nil, &out); err != nil {
		return nil, err
	}
	return out.Subscriptions, nil
}

// Cancel flags a subscription to end at the current period's close.
func (s *SubscriptionService) Cancel(ctx context.Context, subscriptionID string) (*Subscription, error) {
	var out Subscription
	if err := s.client.do(ctx, http.MethodPost, "/subscriptions/"+subscriptionID+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PortalSession is a short-lived billing-portal handoff.
type PortalSession struct {
	URL string `json:"url"`
}

// Portal creates a billing-portal session for the organization; the caller
// redirects the browser to the returned URL.
func (s *SubscriptionService) Portal(ctx context.Context, organizationID, returnURL string) (*PortalSession, error) {
	var out PortalSession
	err := s.client.do(ctx, http.MethodPost, "/organizations/"+organizationID+"/billing-portal", map[string]string{
		"returnUrl": returnURL,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
