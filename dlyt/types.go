package dlyt

// Profile is the signed-in user's account
type Profile struct {
	Exists      bool   `json:"exists"`
	Identity    string `json:"identity"`
	Status      int    `json:"status"`
	DisplayName string `json:"display_name"`
	VoiceID     string `json:"voice_id"`
}

// Package is a purchased quota bundle
type Package struct {
	PackageID      int64   `json:"package_id"`
	PackageName    string  `json:"package_name"`
	QuotaASRChars  int64   `json:"quota_asr_chars"`
	QuotaTTSChars  int64   `json:"quota_tts_chars"`
	RemainASRChars int64   `json:"remain_asr_chars"`
	RemainTTSChars int64   `json:"remain_tts_chars"`
	UsedASRChars   int64   `json:"used_asr_chars"`
	UsedTTSChars   int64   `json:"used_tts_chars"`
	ExpireAt       *string `json:"expire_at"`
}

type packagesResponse struct {
	Items []Package `json:"items"`
}

// UsageDay is one day of consumption
type UsageDay struct {
	Date     string `json:"date"`
	ASRChars int64  `json:"asr_chars"`
	TTSChars int64  `json:"tts_chars"`
	Requests int64  `json:"requests"`
}

type usageResponse struct {
	Days []UsageDay `json:"days"`
}

// UsageRange selects the days returned by Usage. Empty fields are not sent.
type UsageRange struct {
	From string
	To   string
	Days int
}

func (r UsageRange) params() Params {
	p := Params{}
	if r.From != "" {
		p["from"] = r.From
	}
	if r.To != "" {
		p["to"] = r.To
	}
	if r.Days > 0 {
		p["days"] = r.Days
	}
	return p
}

// LoginUser is the account returned on sign-in
type LoginUser struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Status      int    `json:"status"`
}

// LoginReply carries the new session
type LoginReply struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// Pagination describes a page of history
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Video is a processed video
type Video struct {
	ID           int64   `json:"id"`
	SourceSite   string  `json:"source_site"`
	VideoID      string  `json:"video_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ChannelTitle string  `json:"channel_title"`
	DurationSec  int64   `json:"duration_sec"`
	PublishedAt  *string `json:"published_at"`
	ThumbnailURL string  `json:"thumbnail_url"`
	AudioURL     string  `json:"audio_url"`
	Status       int     `json:"status"`
}

// VideoPage is a page of videos
type VideoPage struct {
	Items      []Video    `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// TTSRecord is one speech synthesis request
type TTSRecord struct {
	ID           int64  `json:"id"`
	UserIdentity string `json:"user_identity"`
	TextHash     string `json:"text_hash"`
	TextPreview  string `json:"text_preview"`
	CharCount    int64  `json:"char_count"`
	Speaker      string `json:"speaker"`
	AudioURL     string `json:"audio_url"`
	RequestID    string `json:"request_id"`
	Status       int    `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// TTSPage is a page of synthesis records
type TTSPage struct {
	Items      []TTSRecord `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// MediaRequest identifies a video. Platform and TargetLang are optional.
type MediaRequest struct {
	IDOrURL    string `json:"id_or_url"`
	Platform   string `json:"platform,omitempty"`
	TargetLang string `json:"target_lang,omitempty"`
}

// MediaInfo is video metadata
type MediaInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	DurationSec  int64  `json:"duration_sec"`
	Views        int64  `json:"views"`
	PublishDate  string `json:"publish_date"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// MediaText is a transcript with optional translation and synthesized audio
type MediaText struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	AudioData      string `json:"audio_data"`
	AudioType      string `json:"audio_type"`
}
