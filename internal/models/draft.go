package models

import "github.com/postad/postad-api/internal/adform"

// DraftResponse is a form session as returned by the drafts API
type DraftResponse struct {
	ID string `json:"id"`
	adform.Snapshot
}

// SetFieldRequest replaces one scalar field. An empty value clears it.
type SetFieldRequest struct {
	Value *string `json:"value" binding:"required"`
}

// SelectTabRequest switches the location section tab
type SelectTabRequest struct {
	Tab string `json:"tab" binding:"required,oneof=list current"`
}

// UploadResponse acknowledges an image accepted for background encoding
type UploadResponse struct {
	Accepted bool `json:"accepted"`
	Slot     int  `json:"slot"`
}

// SubmitResponse is the outcome of a submit. Listing is set on success,
// Errors on rejection.
type SubmitResponse struct {
	Success bool          `json:"success"`
	Listing *Listing      `json:"listing,omitempty"`
	Errors  adform.Errors `json:"errors,omitempty"`
}
