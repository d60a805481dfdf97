package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxBatchDocuments is the largest batch accepted regardless of configuration.
const MaxBatchDocuments = 500

// AnalyzeRequest is the JSON body of POST /analyze.
// An empty text is valid and scores zero.
type AnalyzeRequest struct {
	Text *string `json:"text" validate:"required"`
}

// BatchRequest is the JSON body of POST /analyze/batch.
type BatchRequest struct {
	Documents []string `json:"documents" validate:"required,min=1,max=500"`
}

// BatchResponse wraps the per-document results of a batch request.
type BatchResponse struct {
	Results []AnalysisResult `json:"results"`
}

// LexiconResponse lists the terms of each built-in lexicon.
type LexiconResponse struct {
	Keywords  []string `json:"keywords"`
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
