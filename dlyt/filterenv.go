package dlyt

import "time"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads the server's timestamp formats. Unparseable or empty
// values give the zero time.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FilterEnv exposes the record to history filters
func (r TTSRecord) FilterEnv() map[string]any {
	return map[string]any{
		"ID":        r.ID,
		"Identity":  r.UserIdentity,
		"Preview":   r.TextPreview,
		"Chars":     r.CharCount,
		"Speaker":   r.Speaker,
		"AudioURL":  r.AudioURL,
		"HasAudio":  r.AudioURL != "",
		"RequestID": r.RequestID,
		"Status":    r.Status,
		"Created":   ParseTimestamp(r.CreatedAt),
		"Updated":   ParseTimestamp(r.UpdatedAt),
	}
}

// FilterEnv exposes the video to history filters
func (v Video) FilterEnv() map[string]any {
	published := time.Time{}
	if v.PublishedAt != nil {
		published = ParseTimestamp(*v.PublishedAt)
	}
	return map[string]any{
		"ID":          v.ID,
		"Site":        v.SourceSite,
		"VideoID":     v.VideoID,
		"Title":       v.Title,
		"Description": v.Description,
		"Channel":     v.ChannelTitle,
		"Duration":    v.DurationSec,
		"Published":   published,
		"AudioURL":    v.AudioURL,
		"HasAudio":    v.AudioURL != "",
		"Status":      v.Status,
	}
}
