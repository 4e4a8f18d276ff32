package dlyt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	client, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/account/profile", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"code":0,"msg":"ok","data":{"exists":true,"identity":"u1","status":1,"display_name":"Ada","voice_id":"v9"}}`)
	}, nil)

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Profile{Exists: true, Identity: "u1", Status: 1, DisplayName: "Ada", VoiceID: "v9"}, profile)
	assert.Empty(t, notifier.snapshot())
}

// A bare profile carries its own status field, which the envelope check reads first.
func TestProfileBareStatusIsBusinessCode(t *testing.T) {
	client, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"exists":true,"identity":"u1","status":1,"display_name":"Ada","voice_id":"v9"}`)
	}, nil)

	profile, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.Nil(t, profile)
	assert.Equal(t, "request failed (1)", err.Error())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsBusiness())
	assert.Equal(t, []string{"request failed (1)"}, notifier.snapshot())
}

func TestPackagesAndUsage(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/account/packages":
			writeJSON(w, http.StatusOK, `{"items":[{"package_id":3,"package_name":"Basic","quota_tts_chars":1000,"remain_tts_chars":400,"expire_at":null}]}`)
		case "/api/account/usage":
			assert.Equal(t, "days=7&from=2026-01-01", r.URL.RawQuery)
			writeJSON(w, http.StatusOK, `{"days":[{"date":"2026-01-01","asr_chars":10,"tts_chars":20,"requests":2}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, nil)

	ctx := context.Background()

	packages, err := client.Packages(ctx)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "Basic", packages[0].PackageName)
	assert.Equal(t, int64(400), packages[0].RemainTTSChars)
	assert.Nil(t, packages[0].ExpireAt)

	days, err := client.Usage(ctx, UsageRange{From: "2026-01-01", Days: 7})
	require.NoError(t, err)
	assert.Equal(t, []UsageDay{{Date: "2026-01-01", ASRChars: 10, TTSChars: 20, Requests: 2}}, days)
}

func TestLoginHelpers(t *testing.T) {
	var forms []url.Values
	var paths []string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		forms = append(forms, r.PostForm)
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, `{"code":0,"data":{"token":"t1","user":{"identity":"u1","display_name":"Ada","status":1}}}`)
	}, nil)

	ctx := context.Background()

	reply, err := client.Login(ctx, "13800000000", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t1", reply.Token)
	assert.Equal(t, "u1", reply.User.Identity)

	_, err = client.LoginSimple(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, client.ChangePassword(ctx, "n3w"))

	assert.Equal(t, []string{"/api/auth/login", "/api/auth/login_simple", "/api/auth/change_password"}, paths)
	assert.Equal(t, "13800000000", forms[0].Get("phone"))
	assert.Equal(t, "secret", forms[0].Get("password"))
	assert.Equal(t, "u1", forms[1].Get("identity"))
	assert.Equal(t, "n3w", forms[2].Get("new_password"))
}

func TestLogout(t *testing.T) {
	var rawQuery string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"logout":true}`)
	}, StaticCredentials{TokenValue: "t+1", IdentityValue: "u1"})

	require.NoError(t, client.Logout(context.Background(), "t+1"))
	assert.Equal(t, "token=t%2B1&identity=u1", rawQuery)
}

func TestHistoryHelpers(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/history/videos":
			assert.Equal(t, "page=2&size=10", r.URL.RawQuery)
			writeJSON(w, http.StatusOK, `{"items":[{"id":1,"source_site":"youtube","video_id":"abc","title":"T"}],"pagination":{"page":2,"size":10,"total":11,"total_pages":2,"has_next":false,"has_prev":true}}`)
		case "/api/history/tts":
			assert.Equal(t, "speaker=alloy", r.URL.RawQuery)
			writeJSON(w, http.StatusOK, `{"items":[{"id":5,"text_preview":"hi","char_count":2,"speaker":"alloy","status":1}],"pagination":{"page":1,"size":20,"total":1,"total_pages":1}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, nil)

	ctx := context.Background()

	videos, err := client.ListVideos(ctx, PageParams(2, 10))
	require.NoError(t, err)
	require.Len(t, videos.Items, 1)
	assert.Equal(t, "abc", videos.Items[0].VideoID)
	assert.True(t, videos.Pagination.HasPrev)
	assert.Equal(t, int64(11), videos.Pagination.Total)

	tts, err := client.ListTTS(ctx, Params{"speaker": "alloy"})
	require.NoError(t, err)
	require.Len(t, tts.Items, 1)
	assert.Equal(t, int64(2), tts.Items[0].CharCount)
}

func TestGetVideoEscapesSegments(t *testing.T) {
	var escaped string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		escaped = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, `{"data":{"id":9,"source_site":"you tube","video_id":"a/b"}}`)
	}, nil)

	video, err := client.GetVideo(context.Background(), "you tube", "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/api/history/video/you%20tube/a%2Fb", escaped)
	assert.Equal(t, "a/b", video.VideoID)
}

func TestMediaHelpers(t *testing.T) {
	var bodies []map[string]any
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		require.NoError(t, json.Unmarshal(data, &body))
		bodies = append(bodies, body)

		switch r.URL.Path {
		case "/api/yt/info":
			writeJSON(w, http.StatusOK, `{"id":"abc","title":"T","author":"A","duration_sec":61,"views":1000}`)
		case "/api/yt/text":
			writeJSON(w, http.StatusOK, `{"original_text":"hello","translated_text":"hola","audio_data":"","audio_type":""}`)
		}
	}, nil)

	ctx := context.Background()

	info, err := client.Info(ctx, MediaRequest{IDOrURL: "abc"})
	require.NoError(t, err)
	assert.Equal(t, int64(61), info.DurationSec)

	_, err = client.Info(ctx, MediaRequest{IDOrURL: "abc", Platform: "bilibili", TargetLang: "es"})
	require.NoError(t, err)

	text, err := client.Text(ctx, MediaRequest{IDOrURL: "abc", TargetLang: "es"})
	require.NoError(t, err)
	assert.Equal(t, "hola", text.TranslatedText)

	require.Len(t, bodies, 3)
	assert.Equal(t, map[string]any{"id_or_url": "abc"}, bodies[0])
	assert.Equal(t, map[string]any{"id_or_url": "abc", "platform": "bilibili"}, bodies[1])
	assert.Equal(t, map[string]any{"id_or_url": "abc", "target_lang": "es"}, bodies[2])
}

func TestTypedHelperRejectsText(t *testing.T) {
	client, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html></html>")
	}, nil)

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Empty(t, notifier.snapshot())
}

func TestSummary(t *testing.T) {
	client, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/account/profile":
			writeJSON(w, http.StatusOK, `{"exists":true,"identity":"u1"}`)
		case "/api/account/packages":
			writeJSON(w, http.StatusOK, `{"code":500,"msg":"packages unavailable"}`)
		case "/api/account/usage":
			writeJSON(w, http.StatusOK, `{"days":[{"date":"2026-01-01","requests":3}]}`)
		}
	}, nil)

	summary, err := client.Summary(context.Background(), UsageRange{Days: 7})
	require.NoError(t, err)
	require.NotNil(t, summary.Profile)
	assert.Equal(t, "u1", summary.Profile.Identity)
	assert.Empty(t, summary.Packages)
	assert.Len(t, summary.Usage, 1)
	assert.Equal(t, []string{"packages unavailable"}, summary.Errors)
	assert.Equal(t, []string{"packages unavailable"}, notifier.snapshot())
}

func TestSummaryFailureDoesNotCancelOthers(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/account/profile":
			writeJSON(w, http.StatusInternalServerError, `{"msg":"profile down"}`)
		case "/api/account/packages":
			time.Sleep(50 * time.Millisecond)
			assert.NoError(t, r.Context().Err())
			writeJSON(w, http.StatusOK, `{"items":[{"package_id":1,"package_name":"Basic"}]}`)
		case "/api/account/usage":
			writeJSON(w, http.StatusOK, `{"days":[]}`)
		}
	}, nil)

	summary, err := client.Summary(context.Background(), UsageRange{})
	require.NoError(t, err)
	assert.Nil(t, summary.Profile)
	require.Len(t, summary.Packages, 1)
	assert.Equal(t, "Basic", summary.Packages[0].PackageName)
	assert.Equal(t, []string{"profile down"}, summary.Errors)
}

func TestSummaryAllFailed(t *testing.T) {
	client, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, `{"msg":"down"}`)
	}, nil)

	summary, err := client.Summary(context.Background(), UsageRange{})
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, "down", err.Error())
	assert.Len(t, notifier.snapshot(), 3)
}
