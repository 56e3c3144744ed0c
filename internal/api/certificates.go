package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/me/smecert/pkg/model"
)

// ListCertificates returns the current user's certificates.
func (c *Client) ListCertificates(ctx context.Context) ([]model.Certificate, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/certificates/", &raw); err != nil {
		return nil, err
	}
	return decodeList[model.Certificate](raw)
}

// DownloadCertificatePDF writes the certificate's PDF bytes to w.
// The download goes through the same auth/refresh path as JSON calls.
func (c *Client) DownloadCertificatePDF(ctx context.Context, id int64, w io.Writer) error {
	data, err := c.roundTrip(ctx, http.MethodGet, fmt.Sprintf("/certificates/%d/download_pdf/", id), nil, 0)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ValidateCertificate checks a unique code. The endpoint is public: it works
// with or without a session.
func (c *Client) ValidateCertificate(ctx context.Context, uniqueCode string) (*model.CertificateValidation, error) {
	req := struct {
		UniqueCode string `json:"unique_code"`
	}{UniqueCode: uniqueCode}

	var v model.CertificateValidation
	if err := c.post(ctx, "/certificates/validate/", req, &v); err != nil {
		// The upstream answers 404 with is_valid=false for unknown codes;
		// fold that into a negative validation instead of an error page.
		if apiErr, ok := err.(*APIError); ok && apiErr.IsNotFound() {
			return &model.CertificateValidation{IsValid: false, Detail: apiErr.Detail}, nil
		}
		return nil, err
	}
	return &v, nil
}
