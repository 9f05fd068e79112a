package upload

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

// defaultTags go on every upload alongside the script-derived ones
var defaultTags = []string{
	"brainrot", "skibidi", "sigma", "rizz", "gyatt", "shorts",
	"math", "meme", "gen alpha", "educational",
}

// Uploader publishes the final video to YouTube via Data API v3
type Uploader struct {
	cfg *config.Config
}

// New creates a new Uploader
func New(cfg *config.Config) *Uploader {
	return &Uploader{cfg: cfg}
}

// BuildMetadata derives upload metadata from the generated script
func (u *Uploader) BuildMetadata(topic string, script *types.Script) *types.VideoMetadata {
	title := script.Title
	if len(title) > 95 {
		title = title[:95]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", script.Title)
	fmt.Fprintf(&sb, "Today's lecture: %s\n\n", topic)
	sb.WriteString("Fully AI-generated brainrot: Gemini script, Gemini images, TTS narration, procedural animation.\n\n")
	for _, tag := range defaultTags {
		fmt.Fprintf(&sb, "#%s ", strings.ReplaceAll(tag, " ", ""))
	}

	return &types.VideoMetadata{
		Title:       title,
		Description: sb.String(),
		Tags:        defaultTags,
		CategoryID:  u.cfg.Upload.CategoryID,
		Visibility:  u.cfg.Upload.Visibility,
	}
}

// Run uploads the video and returns its id and watch URL
func (u *Uploader) Run(ctx context.Context, videoFile string, metadata *types.VideoMetadata) (string, string, error) {
	log.Println("[upload] Authenticating with YouTube API...")

	client, err := u.oauthClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("youtube auth: %w", err)
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", "", fmt.Errorf("youtube service: %w", err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:                metadata.Title,
			Description:          metadata.Description,
			Tags:                 metadata.Tags,
			CategoryId:           metadata.CategoryID,
			DefaultLanguage:      u.cfg.Upload.DefaultLanguage,
			DefaultAudioLanguage: u.cfg.Upload.DefaultLanguage,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           metadata.Visibility,
			SelfDeclaredMadeForKids: u.cfg.Upload.MadeForKids,
		},
	}

	f, err := os.Open(videoFile)
	if err != nil {
		return "", "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	log.Printf("[upload] Uploading %q (%.1f MB)...", metadata.Title, fileSizeMB(f))

	call := svc.Videos.Insert([]string{"snippet", "status"}, video)
	call.NotifySubscribers(u.cfg.Upload.NotifySubscribers)
	call.Media(f)

	uploaded, err := call.Do()
	if err != nil {
		return "", "", fmt.Errorf("youtube upload: %w", err)
	}

	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploaded.Id)
	log.Printf("[upload] ✅ Uploaded: %s", videoURL)
	return uploaded.Id, videoURL, nil
}

// fileSizeMB reports an open file's size for logging; 0 if it cannot be
// determined
func fileSizeMB(f *os.File) float64 {
	fi, err := f.Stat()
	if err != nil {
		return 0
	}
	return float64(fi.Size()) / 1024 / 1024
}

// oauthClient builds an HTTP client from env refresh-token credentials
func (u *Uploader) oauthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}

	return oauth2.NewClient(ctx, conf.TokenSource(ctx, token)), nil
}
