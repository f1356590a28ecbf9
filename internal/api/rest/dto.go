package rest

import (
	"errors"
	"time"

	"github.com/slide-archive/histogramd/internal/store/schema"
)

// HistogramDTO is the wire shape of a histogram record.
type HistogramDTO struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"itemId"`
	FileID           *string   `json:"fileId,omitempty"`
	Label            bool      `json:"label"`
	Bitmask          bool      `json:"bitmask"`
	Bins             int       `json:"bins"`
	Notify           bool      `json:"notify"`
	Expected         bool      `json:"expected"`
	JobID            *string   `json:"jobId,omitempty"`
	CorrelationToken *string   `json:"correlationToken,omitempty"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
}

// ToHistogramDTO maps a stored record to its wire shape.
func ToHistogramDTO(h *schema.Histogram) HistogramDTO {
	return HistogramDTO{
		ID:               h.ID,
		ItemID:           h.ItemID,
		FileID:           h.FileID,
		Label:            h.Label,
		Bitmask:          h.Bitmask,
		Bins:             h.Bins,
		Notify:           h.Notify,
		Expected:         h.Expected,
		JobID:            h.JobID,
		CorrelationToken: h.CorrelationToken,
		Created:          h.CreatedAt,
		Updated:          h.UpdatedAt,
	}
}

// ListHistogramsResponse is the paginated list envelope.
type ListHistogramsResponse struct {
	Histograms []HistogramDTO `json:"histograms"`
	Total      uint64         `json:"total"`
	Limit      int            `json:"limit"`
	Offset     uint64         `json:"offset"`
}

// CreateHistogramRequest is the body of POST /histogram.
type CreateHistogramRequest struct {
	ItemID  string  `json:"itemId"`
	FileID  *string `json:"fileId,omitempty"`
	Bins    *int    `json:"bins,omitempty"`
	Label   bool    `json:"label"`
	Bitmask bool    `json:"bitmask"`
	Notify  bool    `json:"notify"`
}

// Validate checks the request body
func (r *CreateHistogramRequest) Validate() error {
	if r.ItemID == "" {
		return errors.New("itemId is required")
	}
	if r.FileID != nil && *r.FileID == "" {
		return errors.New("fileId must not be empty when provided")
	}
	return nil
}

// SettingsDTO carries the service-wide histogram settings.
type SettingsDTO struct {
	DefaultBins int `json:"defaultBins"`
}
