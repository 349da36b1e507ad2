package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"ytscribe/internal/errs"
	"ytscribe/internal/pipeline"
	"ytscribe/internal/types"
	"ytscribe/internal/usecase"
)

// transcribeRequest is the JSON body of POST /api/transcribe. write_srt is a
// pointer because omission means true, matching the CLI's historical
// behavior of always producing subtitles from the web UI.
type transcribeRequest struct {
	URL                string `json:"url" binding:"required"`
	Model              string `json:"model"`
	Task               string `json:"task" binding:"omitempty,oneof=transcribe translate"`
	Language           string `json:"language"`
	WriteSRT           *bool  `json:"write_srt"`
	Cookies            string `json:"cookies"`
	CookiesFromBrowser string `json:"cookies_from_browser"`
	Username           string `json:"username"`
	Password           string `json:"password"`
}

func (s *Server) handleTranscribe(c *gin.Context) {
	var body transcribeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// local paths are CLI-only; accepting them here would let remote
	// clients read arbitrary server files
	if !usecase.IsRemote(body.URL) {
		s.respondError(c, errs.InvalidInput("url must be an http(s) URL"))
		return
	}

	model := body.Model
	if model == "" {
		model = s.cfg.DefaultModel
	}
	task := types.Task(body.Task)
	if task == "" {
		task = types.TaskTranscribe
	}
	writeSRT := body.WriteSRT == nil || *body.WriteSRT

	res, err := s.runner.Run(c.Request.Context(), pipeline.Request{
		Source:   body.URL,
		Model:    model,
		Task:     task,
		Language: body.Language,
		WriteSRT: writeSRT,
		Auth: types.AuthOptions{
			CookieFile:         body.Cookies,
			CookiesFromBrowser: body.CookiesFromBrowser,
			Username:           body.Username,
			Password:           body.Password,
		},
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleDownload(c *gin.Context) {
	name := c.Query("file")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file parameter is required"})
		return
	}

	path, err := resolveWithin(s.runner.OutDir(), name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if _, err := os.Stat(path); err != nil {
		s.respondError(c, errs.NotFound(name))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (s *Server) handleIndex(c *gin.Context) {
	index := filepath.Join(s.cfg.StaticDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexFallback))
}

// respondError maps pipeline error kinds onto status codes. The original
// service answered 500 for everything; preserving the kind is a documented
// deviation. The body shape is unchanged.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var perr *errs.Error
	if errors.As(err, &perr) {
		status = perr.HTTPStatus
	}
	s.log.Error().Err(err).Int("status", status).Msg("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}

// resolveWithin joins name onto dir and rejects any path that escapes it.
func resolveWithin(dir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", errs.InvalidInput("invalid path")
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.Internal(err)
	}
	path := filepath.Join(absDir, name)
	rel, err := filepath.Rel(absDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errs.InvalidInput("invalid path")
	}
	return path, nil
}

const indexFallback = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>ytscribe</title></head>
<body>
<h1>ytscribe</h1>
<p>POST /api/transcribe with {"url": "..."} to transcribe a video.</p>
</body>
</html>
`
