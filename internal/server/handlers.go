package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/internal/version"
	"github.com/jmylchreest/cleanread/pkg/cleaner"
	"github.com/jmylchreest/cleanread/pkg/relay"
	"github.com/jmylchreest/cleanread/pkg/summary"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, relay.HealthResponse{Status: "ok", Version: version.String()})
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req relay.SummarizeRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, relay.MsgContentRequired)
		return
	}
	mode, err := summary.ParseMode(req.Mode)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid mode %q: must be one of tldr, bullets, key", req.Mode))
		return
	}

	ctx := c.Request.Context()
	out, err := s.summarizer.Summarize(ctx, req.Content, mode)
	switch {
	case errors.Is(err, summary.ErrEmptyContent):
		fail(c, http.StatusBadRequest, relay.MsgContentRequired)
		return
	case err != nil:
		logger.ErrorContext(ctx, "summarize failed", "mode", mode, "chars", len(req.Content), "error", err)
		fail(c, http.StatusInternalServerError, relay.MsgSummaryFailed)
		return
	}

	logger.DebugContext(ctx, "summarized", "mode", mode, "chars", len(req.Content), "summary_chars", len(out))
	c.JSON(http.StatusOK, relay.SummarizeResponse{Summary: out})
}

func (s *Server) handleClean(c *gin.Context) {
	var req relay.CleanRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		fail(c, http.StatusBadRequest, relay.MsgHTMLRequired)
		return
	}

	cleaned, err := s.stripper.Clean(req.HTML)
	if err != nil {
		logger.ErrorContext(c.Request.Context(), "clean failed", "error", err)
		fail(c, http.StatusInternalServerError, relay.MsgCleanFailed)
		return
	}
	c.JSON(http.StatusOK, relay.CleanResponse{Cleaned: cleaned})
}

func (s *Server) handleExtract(c *gin.Context) {
	var req relay.ExtractRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		fail(c, http.StatusBadRequest, relay.MsgHTMLRequired)
		return
	}
	format, err := cleaner.ParseFormat(req.Format)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := cleaner.New(req.Engine); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	out, err := cleaner.Extract(req.HTML, req.Engine, format)
	if err != nil {
		logger.ErrorContext(c.Request.Context(), "extract failed", "engine", req.Engine, "error", err)
		fail(c, http.StatusInternalServerError, relay.MsgExtractFailed)
		return
	}

	c.JSON(http.StatusOK, relay.ExtractResponse{
		Content:   out.Content,
		WordCount: out.WordCount,
		ReadTime:  out.ReadTime,
		Engine:    out.Engine,
		Strategy:  string(out.Strategy),
	})
}

// bind decodes the JSON body into v, writing the error response itself when
// decoding fails.
func bind(c *gin.Context, v any) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	fail(c, http.StatusBadRequest, "Invalid request body")
	return false
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, relay.ErrorResponse{Error: msg})
}
