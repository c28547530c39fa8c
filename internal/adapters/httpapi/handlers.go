package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/stoik/phishing-analyzer/internal/adapters/mime"
	"github.com/stoik/phishing-analyzer/internal/domain"
	"github.com/stoik/phishing-analyzer/internal/domain/detection"
	"go.uber.org/zap"
)

const analysisIDTrailer = "X-Analysis-ID"

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type toolResponse struct {
	Name    string           `json:"name"`
	Flagged bool             `json:"flagged"`
	Result  detection.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// analyzeForm builds the email from the submitted form and streams the analysis
func (h *Handler) analyzeForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(h.opts.MaxUploadBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		h.writeBodyError(w, err)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	email := domain.EmailRecord{
		Sender:  r.PostFormValue("sender"),
		Subject: r.PostFormValue("subject"),
		Body:    r.PostFormValue("body"),
	}
	if r.MultipartForm != nil {
		email.Attachments = attachmentsFromForm(r.MultipartForm.File["attachments"])
	}

	h.stream(w, r, email)
}

// analyzeRaw parses the request body as an RFC 5322 message and streams the
// analysis
func (h *Handler) analyzeRaw(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	email, err := h.parser.Parse(body)
	if err != nil {
		h.writeBodyError(w, err)
		return
	}

	h.stream(w, r, *email)
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request, email domain.EmailRecord) {
	ctx := r.Context()
	if h.opts.AnalysisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.AnalysisTimeout)
		defer cancel()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Trailer", analysisIDTrailer)
	w.WriteHeader(http.StatusOK)

	analysis, err := h.analyzer.Stream(ctx, email, w)
	if analysis != nil {
		w.Header().Set(analysisIDTrailer, analysis.ID.String())
	}
	if err != nil {
		// The status line is already sent; the client sees a stream without
		// a final conclusion.
		h.logger.Warn("Streaming analysis failed", zap.Error(err))
	}
}

func (h *Handler) listTools(w http.ResponseWriter, r *http.Request) {
	capabilities := h.analyzer.Capabilities()
	tools := make([]toolInfo, 0, len(capabilities))
	for _, c := range capabilities {
		tools = append(tools, toolInfo{Name: c.Name, Description: c.Description})
	}
	writeJSON(w, http.StatusOK, tools)
}

// runTool runs one detector on a JSON email record, for agent frameworks
// that orchestrate the detectors themselves
func (h *Handler) runTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var email domain.EmailRecord
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes))
	if err := decoder.Decode(&email); err != nil {
		h.writeBodyError(w, err)
		return
	}

	result, err := h.analyzer.RunCapability(r.Context(), name, email)
	if errors.Is(err, detection.ErrUnknownCapability) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("Capability failed", zap.String("detector", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "capability failed"})
		return
	}

	writeJSON(w, http.StatusOK, toolResponse{
		Name:    name,
		Flagged: result.Flagged(),
		Result:  result,
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// writeBodyError maps request body failures to a client error
func (h *Handler) writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, mime.ErrEmptyMessage):
		http.Error(w, "empty message", http.StatusBadRequest)
	default:
		h.logger.Debug("Rejected request body", zap.Error(err))
		http.Error(w, "malformed request", http.StatusBadRequest)
	}
}

// attachmentsFromForm keeps the metadata of the uploaded files. An empty
// file input is submitted by browsers as a nameless, empty part and is
// skipped.
func attachmentsFromForm(files []*multipart.FileHeader) []domain.Attachment {
	attachments := make([]domain.Attachment, 0, len(files))
	for _, fh := range files {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		attachments = append(attachments, domain.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
	}
	return attachments
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
