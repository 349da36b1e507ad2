// Package ytdlp drives the yt-dlp extractor to fetch the best audio stream
// for a remote URL as a 192 kbps MP3.
package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"ytscribe/internal/errs"
	"ytscribe/internal/execx"
	"ytscribe/internal/sanitize"
	"ytscribe/internal/types"
)

const targetExt = ".mp3"

// Extensions the post-processor may produce when MP3 conversion is skipped
// or renegotiated, checked in the last-resort fallback.
var audioExts = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac"}

type Adapter struct {
	bin    string
	runner execx.Runner
	log    zerolog.Logger
}

func New(binPath string, runner execx.Runner, log zerolog.Logger) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if runner == nil {
		runner = execx.ExecRunner{}
	}
	return &Adapter{bin: binPath, runner: runner, log: log.With().Str("component", "ytdlp").Logger()}
}

// Acquire downloads the best audio stream for url into destDir and returns
// the produced file plus the extracted title. The definitive output path is
// taken from yt-dlp itself; directory heuristics run only as a fallback.
func (a *Adapter) Acquire(ctx context.Context, url, destDir string, auth types.AuthOptions) (types.Asset, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return types.Asset{}, errs.Acquisition(err, "create destination directory %s", destDir)
	}

	if ch := auth.Channels(); len(ch) > 1 {
		a.log.Warn().Strs("channels", ch).
			Msg("multiple auth channels supplied; the extractor decides precedence")
	}

	args := buildArgs(url, destDir, auth)
	a.log.Info().Str("url", url).Msg("downloading audio")

	res, err := a.runner.Run(ctx, a.bin, args...)
	if err != nil {
		return types.Asset{}, errs.Acquisition(err, "yt-dlp extraction failed: %s", lastLine(res.Stderr))
	}

	title, printedPath := parsePrinted(res.Stdout)
	if title == "" {
		title = "audio"
	}

	if printedPath != "" {
		if _, statErr := os.Stat(printedPath); statErr == nil {
			return types.Asset{Path: printedPath, Title: title}, nil
		}
		a.log.Warn().Str("path", printedPath).Msg("printed output path missing, falling back to directory scan")
	}

	path, err := locateDownload(destDir, sanitize.Clean(title))
	if err != nil {
		return types.Asset{}, err
	}
	a.log.Info().Str("path", path).Msg("located downloaded audio")
	return types.Asset{Path: path, Title: title}, nil
}

// buildArgs maps acquisition parameters onto yt-dlp flags: best audio only,
// no playlist expansion, MP3 post-processing at 192 kbps, title-templated
// output naming, and the printed title plus final file path.
func buildArgs(url, destDir string, auth types.AuthOptions) []string {
	args := []string{
		"--no-playlist",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		"--no-simulate",
		"--print", "title",
		"--print", "after_move:filepath",
	}
	if auth.CookieFile != "" {
		args = append(args, "--cookies", auth.CookieFile)
	}
	if auth.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", auth.CookiesFromBrowser)
	}
	if auth.Username != "" {
		args = append(args, "--username", auth.Username)
	}
	if auth.Password != "" {
		args = append(args, "--password", auth.Password)
	}
	args = append(args, url)
	return args
}

// parsePrinted splits the --print output: first line is the title, last line
// the post-processed file path. A single line means the second print did not
// fire and only the title is usable.
func parsePrinted(stdout string) (title, path string) {
	var lines []string
	for _, l := range strings.Split(stdout, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	switch len(lines) {
	case 0:
		return "", ""
	case 1:
		return lines[0], ""
	default:
		return lines[0], lines[len(lines)-1]
	}
}

// locateDownload finds the produced audio file when the expected name is
// absent: exact sanitized title first, then the newest MP3 in dir, then the
// newest file with any common audio extension.
func locateDownload(dir, cleanTitle string) (string, error) {
	exact := filepath.Join(dir, cleanTitle+targetExt)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	if p := newestWithExt(dir, targetExt); p != "" {
		return p, nil
	}
	for _, ext := range audioExts {
		if p := newestWithExt(dir, ext); p != "" {
			return p, nil
		}
	}
	return "", errs.Acquisition(nil, "downloaded audio file not found in %s", dir)
}

func newestWithExt(dir, ext string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var best string
	var bestMod int64
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best = filepath.Join(dir, e.Name())
			bestMod = mod
		}
	}
	return best
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
