package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/me/smecert/pkg/model"
)

// ParticipantInput are the writable participant fields for create and update.
type ParticipantInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf,omitempty"`
}

// ListParticipants returns all participants (admin only upstream).
func (c *Client) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/participants/", &raw); err != nil {
		return nil, err
	}
	return decodeList[model.Participant](raw)
}

// CreateParticipant creates a single participant.
func (c *Client) CreateParticipant(ctx context.Context, in ParticipantInput) (*model.Participant, error) {
	var p model.Participant
	if err := c.post(ctx, "/participants/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateParticipant updates a participant in place.
func (c *Client) UpdateParticipant(ctx context.Context, id int64, in ParticipantInput) (*model.Participant, error) {
	var p model.Participant
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/participants/%d/", id), in, &p, 0); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteParticipant removes a participant.
func (c *Client) DeleteParticipant(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/participants/%d/", id), nil, nil, 0)
}

// ImportParticipants submits one batch of parsed records and returns the
// server's per-row verdicts unchanged.
func (c *Client) ImportParticipants(ctx context.Context, records []model.ParticipantRecord) (*model.ImportResult, error) {
	var res model.ImportResult
	if err := c.post(ctx, "/participants/import", records, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
