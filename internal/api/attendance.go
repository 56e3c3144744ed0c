package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/me/smecert/pkg/model"
)

// CheckinRequest is the payload for POST /attendances/check-in/.
// Latitude and longitude are optional; the browser form submits them when
// the participant allowed geolocation.
type CheckinRequest struct {
	EventID    int64    `json:"event_id"`
	QRCodeData string   `json:"qr_code_data"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// ListAttendances returns attendance records visible to the current user
// (admins see all, participants see their own).
func (c *Client) ListAttendances(ctx context.Context) ([]model.Attendance, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/attendances/", &raw); err != nil {
		return nil, err
	}
	return decodeList[model.Attendance](raw)
}

// CheckIn registers the participant's arrival at an event.
func (c *Client) CheckIn(ctx context.Context, req CheckinRequest) (*model.Attendance, error) {
	var a model.Attendance
	if err := c.post(ctx, "/attendances/check-in/", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CheckOut closes an open attendance.
func (c *Client) CheckOut(ctx context.Context, attendanceID int64) (*model.Attendance, error) {
	var a model.Attendance
	if err := c.post(ctx, fmt.Sprintf("/attendances/%d/check-out/", attendanceID), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
