package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"

	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/configuration"
	"pulse-metrics/infrastructure/logger"
)

// Client is the RapidAPI-backed TikTok data provider. Every read degrades to
// deterministic mock data when no API key is configured or the upstream call
// fails, so the analytics path never sees a provider outage.
type Client struct {
	httpClient   *http.Client
	key          string
	host         string
	trendingHost string
	mockMode     bool
}

// NewClient creates a provider client from the RapidAPI configuration
func NewClient(cfg configuration.RapidAPI) repository.ITikTok {
	return &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		key:          cfg.Key,
		host:         cfg.Host,
		trendingHost: cfg.TrendingHost,
		mockMode:     cfg.Key == "" || cfg.Mode == "mock",
	}
}

type userQuery struct {
	UniqueID string `url:"unique_id"`
	Count    int    `url:"count,omitempty"`
}

type regionQuery struct {
	Region string `url:"region"`
	Count  int    `url:"count,omitempty"`
}

type searchQuery struct {
	Keywords string `url:"keywords"`
	Count    int    `url:"count,omitempty"`
}

type videoQuery struct {
	URL string `url:"url"`
}

type challengeQuery struct {
	ChallengeName string `url:"challenge_name"`
	Count         int    `url:"count,omitempty"`
}

// request performs one provider call and decodes the JSON body into out
func (c *Client) request(ctx context.Context, host, endpoint string, params interface{}, out interface{}) error {
	values, err := query.Values(params)
	if err != nil {
		return fmt.Errorf("%w: encode query: %v", model.ErrUpstream, err)
	}
	url := fmt.Sprintf("https://%s%s?%s", host, endpoint, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", model.ErrUpstream, err)
	}
	req.Header.Set("X-RapidAPI-Key", c.key)
	req.Header.Set("X-RapidAPI-Host", host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d from %s: %s", model.ErrUpstream, resp.StatusCode, endpoint, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", model.ErrUpstream, endpoint, err)
	}
	return nil
}

func (c *Client) fallback(endpoint string, err error) {
	logger.GetLogger().WithField("endpoint", endpoint).
		WithError(err).Warn("provider call failed, serving mock data")
}

func (c *Client) GetUserProfile(ctx context.Context, username string) (*model.Profile, error) {
	if c.mockMode {
		return mockUserProfile(username), nil
	}
	var resp userInfoResponse
	if err := c.request(ctx, c.host, "/user/info", userQuery{UniqueID: username}, &resp); err != nil {
		c.fallback("/user/info", err)
		return mockUserProfile(username), nil
	}
	return normalizeProfile(username, &resp), nil
}

func (c *Client) GetUserVideos(ctx context.Context, username string, count int) ([]model.Video, error) {
	if count <= 0 {
		count = 30
	}
	if c.mockMode {
		return mockUserVideos(username), nil
	}
	var resp userPostsResponse
	if err := c.request(ctx, c.host, "/user/posts", userQuery{UniqueID: username, Count: count}, &resp); err != nil {
		c.fallback("/user/posts", err)
		return mockUserVideos(username), nil
	}
	if len(resp.Data.Videos) == 0 {
		return mockUserVideos(username), nil
	}
	out := make([]model.Video, 0, len(resp.Data.Videos))
	for i := range resp.Data.Videos {
		out = append(out, normalizeVideo(&resp.Data.Videos[i]))
	}
	return out, nil
}

func (c *Client) GetTrendingVideos(ctx context.Context) ([]model.Video, error) {
	if c.mockMode {
		return mockTrendingVideos(), nil
	}
	var resp feedListResponse
	if err := c.request(ctx, c.host, "/feed/list", regionQuery{Region: "US", Count: 30}, &resp); err != nil {
		c.fallback("/feed/list", err)
		return mockTrendingVideos(), nil
	}
	out := make([]model.Video, 0, len(resp.Data))
	for i := range resp.Data {
		out = append(out, normalizeVideo(&resp.Data[i]))
	}
	return out, nil
}

func (c *Client) GetTrendingSounds(ctx context.Context, region string) ([]model.TrendingSound, error) {
	if region == "" {
		region = "US"
	}
	if c.mockMode {
		return mockTrendingSounds(region), nil
	}
	var resp soundsResponse
	if err := c.request(ctx, c.trendingHost, "/trending/sounds", regionQuery{Region: region}, &resp); err != nil {
		c.fallback("/trending/sounds", err)
		return mockTrendingSounds(region), nil
	}
	sounds := resp.Sounds
	if len(sounds) == 0 {
		sounds = resp.Data
	}
	out := make([]model.TrendingSound, 0, len(sounds))
	for i := range sounds {
		out = append(out, normalizeSound(&sounds[i]))
	}
	return out, nil
}

func (c *Client) GetTrendingHashtags(ctx context.Context, region string) ([]model.TrendingHashtag, error) {
	if region == "" {
		region = "US"
	}
	if c.mockMode {
		return mockTrendingHashtags(region), nil
	}
	var resp hashtagsResponse
	if err := c.request(ctx, c.trendingHost, "/trending/hashtags", regionQuery{Region: region}, &resp); err != nil {
		c.fallback("/trending/hashtags", err)
		return mockTrendingHashtags(region), nil
	}
	hashtags := resp.Hashtags
	if len(hashtags) == 0 {
		hashtags = resp.Data
	}
	out := make([]model.TrendingHashtag, 0, len(hashtags))
	for i := range hashtags {
		out = append(out, normalizeHashtag(&hashtags[i]))
	}
	return out, nil
}

func (c *Client) SearchUsers(ctx context.Context, q string) ([]model.UserSearchResult, error) {
	if c.mockMode {
		return []model.UserSearchResult{}, nil
	}
	var resp searchUserResponse
	if err := c.request(ctx, c.host, "/search/user", searchQuery{Keywords: q, Count: 20}, &resp); err != nil {
		c.fallback("/search/user", err)
		return []model.UserSearchResult{}, nil
	}
	out := make([]model.UserSearchResult, 0, len(resp.Data))
	for i := range resp.Data {
		out = append(out, normalizeSearchUser(&resp.Data[i]))
	}
	return out, nil
}

func (c *Client) SearchVideos(ctx context.Context, q string) ([]model.Video, error) {
	if c.mockMode {
		return []model.Video{}, nil
	}
	var resp feedListResponse
	if err := c.request(ctx, c.host, "/search/video", searchQuery{Keywords: q, Count: 20}, &resp); err != nil {
		c.fallback("/search/video", err)
		return []model.Video{}, nil
	}
	out := make([]model.Video, 0, len(resp.Data))
	for i := range resp.Data {
		out = append(out, normalizeVideo(&resp.Data[i]))
	}
	return out, nil
}

func (c *Client) GetVideoDetails(ctx context.Context, videoURL string) (*model.Video, error) {
	if c.mockMode {
		video := mockVideo(videoURL, 0)
		return &video, nil
	}
	var resp videoInfoResponse
	if err := c.request(ctx, c.host, "/video/info", videoQuery{URL: videoURL}, &resp); err != nil {
		c.fallback("/video/info", err)
		video := mockVideo(videoURL, 0)
		return &video, nil
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: empty video info response", model.ErrUpstream)
	}
	video := normalizeVideo(resp.Data)
	return &video, nil
}

func (c *Client) GetHashtagVideos(ctx context.Context, hashtag string) ([]model.Video, error) {
	if c.mockMode {
		return mockHashtagVideos(hashtag), nil
	}
	var resp challengePostsResponse
	if err := c.request(ctx, c.host, "/challenge/posts", challengeQuery{ChallengeName: hashtag, Count: 30}, &resp); err != nil {
		c.fallback("/challenge/posts", err)
		return mockHashtagVideos(hashtag), nil
	}
	out := make([]model.Video, 0, len(resp.Data.Videos))
	for i := range resp.Data.Videos {
		out = append(out, normalizeVideo(&resp.Data.Videos[i]))
	}
	return out, nil
}
