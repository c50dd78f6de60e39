package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultDataDir         = "./data"
	defaultMaxDuration     = 600 * time.Second
	defaultMaxFileSize     = 50 << 20 // Telegram's bot upload limit
	defaultRequestTimeout  = 15 * time.Minute
	defaultDownloadTimeout = 10 * time.Minute
)

// Config carries everything the bot needs. It is built once at
// startup and passed explicitly into each component; nothing reads
// the environment after Load returns.
type Config struct {
	BotToken        string
	DataDir         string
	MaxDuration     time.Duration
	MaxFileSize     int64
	RequestTimeout  time.Duration
	DownloadTimeout time.Duration
	Transcode       bool
	YtDlpPath       string
	FFmpegPath      string
}

// Load reads configuration from the environment. The bot token is
// the only required value; everything else has a default.
func Load() (*Config, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}

	return &Config{
		BotToken:        token,
		DataDir:         getenvDefault("DATA_DIR", defaultDataDir),
		MaxDuration:     getenvSeconds("MAX_DURATION_SECONDS", defaultMaxDuration),
		MaxFileSize:     getenvInt64("MAX_FILE_SIZE", defaultMaxFileSize),
		RequestTimeout:  getenvSeconds("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout),
		DownloadTimeout: getenvSeconds("DOWNLOAD_TIMEOUT_SECONDS", defaultDownloadTimeout),
		Transcode:       getenvBool("TRANSCODE", true),
		YtDlpPath:       os.Getenv("YTDLP_PATH"),
		FFmpegPath:      os.Getenv("FFMPEG_PATH"),
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func getenvSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return time.Duration(i) * time.Second
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
