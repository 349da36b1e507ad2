package types

// Task selects what the recognition model does with the audio.
type Task string

const (
	TaskTranscribe Task = "transcribe"
	TaskTranslate  Task = "translate"
)

// Asset is a local audio file ready for transcription. Title keeps the
// original display title; callers sanitize it before using it as a filename.
type Asset struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

type Transcript struct {
	Language string    `json:"language,omitempty"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// AuthOptions carries credentials for membership/restricted sources. All set
// channels are forwarded to the extractor, which applies its own precedence.
type AuthOptions struct {
	CookieFile         string `json:"cookies,omitempty"`
	CookiesFromBrowser string `json:"cookies_from_browser,omitempty"`
	Username           string `json:"username,omitempty"`
	Password           string `json:"password,omitempty"`
}

// Channels lists which auth channels are populated, in order of trust:
// cookie file, browser extraction, account credentials.
func (a AuthOptions) Channels() []string {
	var out []string
	if a.CookieFile != "" {
		out = append(out, "cookies")
	}
	if a.CookiesFromBrowser != "" {
		out = append(out, "cookies-from-browser")
	}
	if a.Username != "" || a.Password != "" {
		out = append(out, "username/password")
	}
	return out
}
