package forge

// DefaultCoverURL is the cover image used for audio streams when none is configured.
const DefaultCoverURL = "https://images.unsplash.com/photo-1614850523459-c2f4c699c52e?q=80&w=1920&auto=format&fit=crop"

// Config holds every user-supplied deployment parameter.
//
// All fields are opaque text. Secrets (GithubPAT, TelegramBotToken,
// TelegramStreamKey) are embedded into the generated files exactly as given.
type Config struct {
	// GitHub repository
	GithubUser string `json:"githubUser" yaml:"github_user"`
	GithubRepo string `json:"githubRepo" yaml:"github_repo"`
	GithubPAT  string `json:"githubPat" yaml:"github_pat"` // personal access token

	// Telegram
	TelegramBotToken  string `json:"telegramBotToken" yaml:"telegram_bot_token"`
	TelegramAdminID   string `json:"telegramAdminId" yaml:"telegram_admin_id"`
	TelegramRtmpURL   string `json:"telegramRtmpUrl" yaml:"telegram_rtmp_url"`
	TelegramStreamKey string `json:"telegramStreamKey" yaml:"telegram_stream_key"` // appended to TelegramRtmpURL

	// Alist / aria2
	AlistPassword string `json:"alistPassword" yaml:"alist_password"`
	Aria2Secret   string `json:"aria2Secret" yaml:"aria2_secret"`

	// File defaults (descriptive only)
	FileName string `json:"fileName" yaml:"file_name"`
	FileURL  string `json:"fileUrl" yaml:"file_url"`

	// Stream settings
	DefaultCoverURL string `json:"defaultCoverUrl" yaml:"default_cover_url"` // audio mode only
	VideoBitrate    string `json:"videoBitrate" yaml:"video_bitrate"`        // e.g. "6000k"
}

// DefaultConfig returns the configuration a fresh form starts from.
func DefaultConfig() Config {
	return Config{
		GithubUser:      "your-username",
		GithubRepo:      "stream-repo",
		TelegramRtmpURL: "rtmp://x.rtmp.t.me/s/",
		AlistPassword:   "admin",
		Aria2Secret:     "streamforge",
		FileName:        "movie.mp4",
		DefaultCoverURL: DefaultCoverURL,
		VideoBitrate:    "6000k",
	}
}
