package dlyt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// call runs a request and decodes its payload into out
func (c *Client) call(ctx context.Context, path string, opts RequestOptions, out any) error {
	resp, err := c.do(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodePayload(resp, out)
}

// decodePayload unmarshals a JSON reply, unwrapping a top-level data member
func decodePayload(resp *response, out any) error {
	if !resp.isJSON {
		return fmt.Errorf("%w: expected JSON, got %d bytes of text", ErrInvalidResponse, len(resp.raw))
	}

	body := bytes.TrimSpace(resp.raw)
	if len(body) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			body = data
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// Profile retrieves the signed-in user's account
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.call(ctx, "/account/profile", RequestOptions{Method: http.MethodGet}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Packages retrieves the user's quota packages
func (c *Client) Packages(ctx context.Context) ([]Package, error) {
	var resp packagesResponse
	if err := c.call(ctx, "/account/packages", RequestOptions{Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Usage retrieves per-day consumption for r
func (c *Client) Usage(ctx context.Context, r UsageRange) ([]UsageDay, error) {
	var resp usageResponse
	path := appendRawQuery("/account/usage", r.params().Encode())
	if err := c.call(ctx, path, RequestOptions{Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

// Login signs in with phone and password
func (c *Client) Login(ctx context.Context, phone, password string) (*LoginReply, error) {
	var reply LoginReply
	fields := Params{"phone": phone, "password": password}
	if err := c.call(ctx, "/auth/login", formOptions(fields), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// LoginSimple signs in with an identity alone
func (c *Client) LoginSimple(ctx context.Context, identity string) (*LoginReply, error) {
	var reply LoginReply
	fields := Params{"identity": identity}
	if err := c.call(ctx, "/auth/login_simple", formOptions(fields), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ChangePassword sets a new password for the signed-in user
func (c *Client) ChangePassword(ctx context.Context, newPassword string) error {
	fields := Params{"new_password": newPassword}
	return c.call(ctx, "/auth/change_password", formOptions(fields), nil)
}

// Logout ends the session identified by token
func (c *Client) Logout(ctx context.Context, token string) error {
	path := appendQuery("/auth/logout", "token", token)
	return c.call(ctx, path, RequestOptions{Method: http.MethodPost}, nil)
}

// ListVideos retrieves a page of processed videos
func (c *Client) ListVideos(ctx context.Context, params Params) (*VideoPage, error) {
	var page VideoPage
	path := appendRawQuery("/history/videos", params.Encode())
	if err := c.call(ctx, path, RequestOptions{Method: http.MethodGet}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetVideo retrieves one video by site and id
func (c *Client) GetVideo(ctx context.Context, site, videoID string) (*Video, error) {
	var video Video
	path := fmt.Sprintf("/history/video/%s/%s", escapeComponent(site), escapeComponent(videoID))
	if err := c.call(ctx, path, RequestOptions{Method: http.MethodGet}, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// ListTTS retrieves a page of synthesis records
func (c *Client) ListTTS(ctx context.Context, params Params) (*TTSPage, error) {
	var page TTSPage
	path := appendRawQuery("/history/tts", params.Encode())
	if err := c.call(ctx, path, RequestOptions{Method: http.MethodGet}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Info retrieves video metadata
func (c *Client) Info(ctx context.Context, req MediaRequest) (*MediaInfo, error) {
	body := map[string]string{"id_or_url": req.IDOrURL}
	if req.Platform != "" {
		body["platform"] = req.Platform
	}

	var info MediaInfo
	opts := RequestOptions{Method: http.MethodPost, Data: body}
	if err := c.call(ctx, "/yt/info", opts, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Text retrieves the transcript, translated when req.TargetLang is set
func (c *Client) Text(ctx context.Context, req MediaRequest) (*MediaText, error) {
	body := map[string]string{"id_or_url": req.IDOrURL}
	if req.Platform != "" {
		body["platform"] = req.Platform
	}
	if req.TargetLang != "" {
		body["target_lang"] = req.TargetLang
	}

	var text MediaText
	opts := RequestOptions{Method: http.MethodPost, Data: body}
	if err := c.call(ctx, "/yt/text", opts, &text); err != nil {
		return nil, err
	}
	return &text, nil
}
