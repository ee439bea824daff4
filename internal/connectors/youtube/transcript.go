package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// timedText is the caption endpoint's XML payload.
type timedText struct {
	XMLName xml.Name        `xml:"transcript"`
	Lines   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// FetchTranscript retrieves the English transcript for a video from
// the caption endpoint. Many videos have no captions: an empty or
// missing transcript yields (nil, nil), not an error. Only transport
// failures are reported, and callers treat those as degraded too.
func (c *Connector) FetchTranscript(ctx context.Context, videoID string) (*domain.Record, error) {
	endpoint := c.config.TranscriptBaseURL + "?" + url.Values{
		"v":    {videoID},
		"lang": {"en"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build transcript request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	// The endpoint answers 404 for captionless videos.
	if resp.StatusCode != http.StatusOK {
		logger.Debug("youtube: no transcript for %s (status %d)", videoID, resp.StatusCode)
		return nil, nil
	}

	var payload timedText
	if err := xml.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// An empty body decodes with an EOF error; captionless either way.
		logger.Debug("youtube: no transcript for %s: %v", videoID, err)
		return nil, nil
	}

	parts := make([]string, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		if t := strings.TrimSpace(line.Text); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}

	rec := domain.Record{
		SourceType: domain.SourceYouTubeTranscript,
		VideoID:    videoID,
		Text:       strings.Join(parts, " "),
		URL:        domain.WatchURL(videoID),
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	rec.Enrich()
	return &rec, nil
}
