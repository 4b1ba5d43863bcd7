package model

// VideoStats holds the counter block of a video. Missing counters from any
// provider shape normalize to zero, never to null.
type VideoStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// VideoAuthor identifies the account that published a video
type VideoAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

// VideoMusic describes the sound attached to a video
type VideoMusic struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	PlayURL string `json:"play_url,omitempty"`
}

// Video represents one published video's stats snapshot. Records are built by
// the provider normalization boundary and immutable afterwards.
type Video struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	CreateTime  int64       `json:"create_time"` // unix seconds
	Author      VideoAuthor `json:"author"`
	Stats       VideoStats  `json:"stats"`
	CoverURL    string      `json:"cover_url,omitempty"`
	PlayURL     string      `json:"play_url,omitempty"`
	Duration    int64       `json:"duration,omitempty"`
	Music       *VideoMusic `json:"music,omitempty"`
	// Hashtags keeps appearance order; duplicates are allowed.
	Hashtags []string `json:"hashtags"`
}

// ProfileStats holds account-level counters
type ProfileStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Likes     int64 `json:"likes"`
	Videos    int64 `json:"videos"`
}

// Profile represents an account snapshot
type Profile struct {
	ID       string       `json:"id"`
	Username string       `json:"username"`
	Nickname string       `json:"nickname"`
	Avatar   string       `json:"avatar,omitempty"`
	Bio      string       `json:"bio,omitempty"`
	Verified bool         `json:"verified"`
	Stats    ProfileStats `json:"stats"`
}

// TrendingSound is one entry of the trending sounds feed
type TrendingSound struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Category   string `json:"category,omitempty"`
	PlayURL    string `json:"play_url,omitempty"`
	CoverURL   string `json:"cover_url,omitempty"`
	Duration   int64  `json:"duration"`
	UsageCount int64  `json:"usage_count"`
	Growth     string `json:"growth,omitempty"`
}

// TrendingHashtag is one entry of the trending hashtags feed
type TrendingHashtag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ViewCount   int64  `json:"view_count"`
	VideoCount  int64  `json:"video_count"`
}

// UserSearchResult is a slim profile row returned by account search
type UserSearchResult struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar,omitempty"`
	Followers int64  `json:"followers"`
	Verified  bool   `json:"verified"`
}
