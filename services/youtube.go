package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrMissingYouTubeKey = errors.New("thiếu YOUTUBE_API_KEY")

const (
	// Video thay thế khi tìm kiếm thất bại — lỗi tìm video không bao giờ
	// được phép làm hỏng cả quá trình tạo khóa học.
	FallbackVideoID  = "dQw4w9WgXcQ"
	FallbackDuration = "10:00"

	searchQualifier = " tutorial"
)

// VideoLookup mang cờ Fallback để caller và test phân biệt được kết quả thật
// với video thay thế, không cần so sánh ID "thần kỳ".
type VideoLookup struct {
	ID       string
	Title    string
	Duration string
	Fallback bool
}

func fallbackLookup(query string) VideoLookup {
	return VideoLookup{
		ID:       FallbackVideoID,
		Title:    query,
		Duration: FallbackDuration,
		Fallback: true,
	}
}

type YouTubeConfig struct {
	APIKey string
}

type YouTubeClient struct {
	svc *youtube.Service
}

func NewYouTubeClient(ctx context.Context, cfg YouTubeConfig) (*YouTubeClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingYouTubeKey
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("không thể tạo YouTube client: %w", err)
	}
	return &YouTubeClient{svc: svc}, nil
}

// Resolve tìm 1 video khớp nhất cho query (kèm hậu tố " tutorial").
// Không trả lỗi: mọi thất bại đều quy về video fallback.
func (c *YouTubeClient) Resolve(ctx context.Context, query string) VideoLookup {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query + searchQualifier).
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("Tìm video thất bại cho %q: %v", query, err)
		return fallbackLookup(query)
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.VideoId == "" {
		log.Printf("Không có kết quả video cho %q", query)
		return fallbackLookup(query)
	}

	item := resp.Items[0]
	lookup := VideoLookup{
		ID:       item.Id.VideoId,
		Title:    query,
		Duration: FallbackDuration,
	}
	if item.Snippet != nil && item.Snippet.Title != "" {
		lookup.Title = item.Snippet.Title
	}

	// Search API không trả duration, phải gọi thêm Videos.List
	detail, err := c.svc.Videos.List([]string{"contentDetails"}).
		Id(lookup.ID).
		Context(ctx).
		Do()
	if err == nil && len(detail.Items) > 0 && detail.Items[0].ContentDetails != nil {
		lookup.Duration = FormatISODuration(detail.Items[0].ContentDetails.Duration)
	}

	return lookup
}

// FormatISODuration đổi duration ISO-8601 của YouTube ("PT1H15M30S")
// sang dạng hiển thị "1:15:30" / "15:30".
func FormatISODuration(iso string) string {
	s := strings.TrimPrefix(iso, "PT")
	if s == iso || s == "" {
		return FallbackDuration
	}

	var hours, minutes, seconds, n int
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			n = n*10 + int(r-'0')
		case r == 'H':
			hours, n = n, 0
		case r == 'M':
			minutes, n = n, 0
		case r == 'S':
			seconds, n = n, 0
		default:
			return FallbackDuration
		}
	}

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
