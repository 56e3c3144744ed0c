package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/me/smecert/pkg/model"
)

// EventInput are the writable event fields for create and update.
type EventInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Workload    float64 `json:"workload_hours,omitempty"`
}

// ListEvents returns all events visible to the current user.
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/events/", &raw); err != nil {
		return nil, err
	}
	return decodeList[model.Event](raw)
}

// GetEvent fetches one event by id.
func (c *Client) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	var ev model.Event
	if err := c.get(ctx, fmt.Sprintf("/events/%d/", id), &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// CreateEvent creates an event (admin only upstream).
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*model.Event, error) {
	var ev model.Event
	if err := c.post(ctx, "/events/", in, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// UpdateEvent updates an event in place.
func (c *Client) UpdateEvent(ctx context.Context, id int64, in EventInput) (*model.Event, error) {
	var ev model.Event
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d/", id), in, &ev, 0); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/", id), nil, nil, 0)
}
