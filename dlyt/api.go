package dlyt

import (
	"context"
	"fmt"

	"github.com/s0up4200/dlyt/notify"
)

// Credentials supplies the session values attached to every call
type Credentials interface {
	Token() string
	Identity() string
}

// Notifier receives user-facing failure messages
type Notifier interface {
	Notify(message string, kind notify.Kind)
}

// StaticCredentials is a fixed token and identity
type StaticCredentials struct {
	TokenValue    string
	IdentityValue string
}

func (s StaticCredentials) Token() string    { return s.TokenValue }
func (s StaticCredentials) Identity() string { return s.IdentityValue }

type noCredentials struct{}

func (noCredentials) Token() string    { return "" }
func (noCredentials) Identity() string { return "" }

type discardNotifier struct{}

func (discardNotifier) Notify(string, notify.Kind) {}

// CredentialsPolicy controls when cookies are sent
type CredentialsPolicy string

const (
	// CredentialsInclude sends cookies on every request
	CredentialsInclude CredentialsPolicy = "include"
	// CredentialsSameOrigin sends cookies only to the base URL's origin
	CredentialsSameOrigin CredentialsPolicy = "same-origin"
	// CredentialsOmit never sends cookies
	CredentialsOmit CredentialsPolicy = "omit"
)

// ParseCredentialsPolicy converts a config value into a CredentialsPolicy
func ParseCredentialsPolicy(s string) (CredentialsPolicy, error) {
	p := CredentialsPolicy(s)
	if err := p.validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p CredentialsPolicy) validate() error {
	switch p {
	case CredentialsInclude, CredentialsSameOrigin, CredentialsOmit:
		return nil
	default:
		return fmt.Errorf("%w: unknown credentials policy %q", ErrInvalidConfig, string(p))
	}
}

// AccountAPI covers the signed-in user's account
type AccountAPI interface {
	Profile(ctx context.Context) (*Profile, error)
	Packages(ctx context.Context) ([]Package, error)
	Usage(ctx context.Context, r UsageRange) ([]UsageDay, error)
}

// AuthAPI covers session management
type AuthAPI interface {
	Login(ctx context.Context, phone, password string) (*LoginReply, error)
	LoginSimple(ctx context.Context, identity string) (*LoginReply, error)
	ChangePassword(ctx context.Context, newPassword string) error
	Logout(ctx context.Context, token string) error
}

// HistoryAPI covers processed videos and synthesis records
type HistoryAPI interface {
	ListVideos(ctx context.Context, params Params) (*VideoPage, error)
	GetVideo(ctx context.Context, site, videoID string) (*Video, error)
	ListTTS(ctx context.Context, params Params) (*TTSPage, error)
}

// MediaAPI covers video metadata and transcript retrieval
type MediaAPI interface {
	Info(ctx context.Context, req MediaRequest) (*MediaInfo, error)
	Text(ctx context.Context, req MediaRequest) (*MediaText, error)
}

// API is the full set of resource helpers
type API interface {
	AccountAPI
	AuthAPI
	HistoryAPI
	MediaAPI
}

var _ API = (*Client)(nil)
