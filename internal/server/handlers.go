package server

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData feeds templates/index.html.
type pageData struct {
	Title   string
	Max     string // today, clamps the date picker
	Birth   string
	Error   string
	Summary *engine.Summary
}

// ageResponse is the JSON body of a successful /api/age call.
type ageResponse struct {
	Birth   string              `json:"birth_date"`
	Today   string              `json:"today"`
	Age     engine.AgeBreakdown `json:"age"`
	Display engine.Summary      `json:"display"`
}

// errorResponse is the JSON body of a rejected /api/age call.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// instrument records request latency per route.
func (s *AgeServer) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.metrics.ObserveRequest(route, start)
	}
}

// calculate runs the shared calculation path and counts the outcome.
// Handlers read the clock once and pass that day along.
func (s *AgeServer) calculate(r *http.Request, today engine.CalendarDate) (engine.Result, error) {
	res, err := s.calc.CalculateOn(today, r.URL.Query().Get(config.QueryBirth), config.TriggerHTTP)
	s.metrics.ObserveCalculation(err)
	return res, err
}

// handleIndex renders the form, and the result when a birth date was submitted.
func (s *AgeServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	today := engine.Today(s.calc.Clock)
	data := pageData{
		Title: config.AppName,
		Max:   today.String(),
		Birth: r.URL.Query().Get(config.QueryBirth),
	}

	if r.URL.Query().Has(config.QueryBirth) {
		res, err := s.calculate(r, today)
		if err != nil {
			data.Error = userMessage(err)
		} else {
			summary := engine.Describe(res.Age)
			data.Summary = &summary
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error(config.ErrTemplateRender,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextHTML)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	s.write(w, buf.Bytes())
}

// handleAPIAge answers with the breakdown as JSON, or 422 with the user message.
func (s *AgeServer) handleAPIAge(w http.ResponseWriter, r *http.Request) {
	res, err := s.calculate(r, engine.Today(s.calc.Clock))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: userMessage(err),
			Kind:  kindOf(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, ageResponse{
		Birth:   res.Birth.String(),
		Today:   res.Today.String(),
		Age:     res.Age,
		Display: engine.Describe(res.Age),
	})
}

// handleCalendar serves the anniversary feed with ETag revalidation.
// The feed is a pure function of birth date and day, so its hash is a
// stable validator until the date changes.
func (s *AgeServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	res, err := s.calculate(r, engine.Today(s.calc.Clock))
	if err != nil {
		http.Error(w, userMessage(err), http.StatusUnprocessableEntity)
		return
	}

	data, err := s.calendar.GenerateOn(res.Today, res.Birth, "")
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderContentDisposition, fmt.Sprintf(config.FormatAttachment, config.ExportFileName))
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	s.write(w, data)
}

func (s *AgeServer) write(w http.ResponseWriter, body []byte) {
	if _, err := w.Write(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// userMessage never leaks technical detail: anything that is not a
// validation rejection becomes the generic server error text.
func userMessage(err error) string {
	var vErr *engine.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return config.HTTPMsgInternalErr
}

func kindOf(err error) string {
	var vErr *engine.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Kind.String()
	}
	return engine.ValidationKind(0).String()
}
