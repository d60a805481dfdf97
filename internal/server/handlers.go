package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/server/middleware"
	"github.com/jonathan/resume-scorer/internal/types"
)

// jsonOverhead is the slack allowed on top of the document limit for JSON
// escaping and the surrounding object.
const jsonOverhead = 1 << 10

// handleAnalyze scores one document sent as {"text": ...} or as a raw text/plain body
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, err := s.readDocument(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	result := s.engine.AnalyzeParallel(text)
	s.metrics.ObserveResult(result)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeBatch scores every document and returns results in request order
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	req, err := s.readBatch(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	results, err := s.engine.AnalyzeBatch(r.Context(), req.Documents, s.concurrency)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	for _, result := range results {
		s.metrics.ObserveResult(result)
	}
	s.jsonResponse(w, http.StatusOK, types.BatchResponse{Results: results})
}

// handleAnalyzeBatchStream scores a batch and streams each result via SSE as it completes
func (s *Server) handleAnalyzeBatchStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.readBatch(w, r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	count := 0
	err = s.engine.AnalyzeEach(r.Context(), req.Documents, s.concurrency, func(index int, result types.AnalysisResult) error {
		s.metrics.ObserveResult(result)
		count++
		return sse.WriteResult(index, result)
	})
	if err != nil {
		s.logger.Info("batch stream ended early",
			zap.Error(err),
			zap.Int("delivered", count),
			zap.Int("documents", len(req.Documents)),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
		sse.WriteError("batch analysis interrupted")
		return
	}

	sse.WriteComplete(count)
}

// handleLexicon lists the terms the engine scores against
func (s *Server) handleLexicon(w http.ResponseWriter, _ *http.Request) {
	keywords, technical, soft := s.engine.Lexicons()
	s.jsonResponse(w, http.StatusOK, types.LexiconResponse{
		Keywords:  keywords.Terms(),
		Technical: technical.Terms(),
		Soft:      soft.Terms(),
	})
}

// readDocument extracts the document text from a JSON or text/plain body.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, err := requestMediaType(r)
	if err != nil {
		return "", err
	}

	switch mediaType {
	case "text/plain":
		doc, err := ingestion.Read(r.Body, "request body", s.maxDocumentBytes)
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	case "application/json":
		var req types.AnalyzeRequest
		if err := s.decodeJSON(w, r, 2*s.maxDocumentBytes+jsonOverhead, &req); err != nil {
			return "", err
		}
		if err := req.Validate(); err != nil {
			return "", validationError(err)
		}
		if int64(len(*req.Text)) > s.maxDocumentBytes {
			return "", fmt.Errorf("text: %w (%d bytes)", ingestion.ErrTooLarge, s.maxDocumentBytes)
		}
		return *req.Text, nil
	default:
		return "", &ErrUnsupportedMediaType{ContentType: mediaType}
	}
}

// readBatch decodes and validates a batch request body.
func (s *Server) readBatch(w http.ResponseWriter, r *http.Request) (*types.BatchRequest, error) {
	mediaType, err := requestMediaType(r)
	if err != nil {
		return nil, err
	}
	if mediaType != "application/json" {
		return nil, &ErrUnsupportedMediaType{ContentType: mediaType}
	}

	var req types.BatchRequest
	limit := int64(s.maxBatch) * (2*s.maxDocumentBytes + jsonOverhead)
	if err := s.decodeJSON(w, r, limit, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	if len(req.Documents) > s.maxBatch {
		return nil, &ErrValidation{
			Field:   "documents",
			Message: fmt.Sprintf("at most %d documents per request", s.maxBatch),
		}
	}
	for i, doc := range req.Documents {
		if int64(len(doc)) > s.maxDocumentBytes {
			return nil, fmt.Errorf("documents[%d]: %w (%d bytes)", i, ingestion.ErrTooLarge, s.maxDocumentBytes)
		}
	}
	return &req, nil
}

// decodeJSON decodes a size-limited JSON body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrMalformedBody{Err: err}
	}
	return nil
}

// requestMediaType returns the body's media type. A missing Content-Type is
// treated as JSON.
func requestMediaType(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "application/json", nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", &ErrUnsupportedMediaType{ContentType: contentType}
	}
	return strings.ToLower(mediaType), nil
}

// validationError converts validator failures into an ErrValidation for the first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "min":
		message = fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		message = fmt.Sprintf("must contain at most %s item(s)", fe.Param())
	default:
		message = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &ErrValidation{Field: field, Message: message}
}
