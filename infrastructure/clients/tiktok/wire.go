package tiktok

import "pulse-metrics/domain/model"

// Wire shapes for the RapidAPI providers. Field aliases differ between the
// scraper hosts, so every counter keeps its known spellings and normalization
// picks the first non-zero one.

type userInfoResponse struct {
	ID   string `json:"id"`
	Data struct {
		User struct {
			ID           string `json:"id"`
			UniqueID     string `json:"uniqueId"`
			Nickname     string `json:"nickname"`
			AvatarLarger string `json:"avatarLarger"`
			AvatarMedium string `json:"avatarMedium"`
			Signature    string `json:"signature"`
			Verified     bool   `json:"verified"`
		} `json:"user"`
		Stats struct {
			FollowerCount  int64 `json:"followerCount"`
			FollowingCount int64 `json:"followingCount"`
			HeartCount     int64 `json:"heartCount"`
			VideoCount     int64 `json:"videoCount"`
		} `json:"stats"`
	} `json:"data"`
}

type userPostsResponse struct {
	Data struct {
		Videos []wireVideo `json:"videos"`
	} `json:"data"`
}

type feedListResponse struct {
	Data []wireVideo `json:"data"`
}

type wireAuthor struct {
	ID           string `json:"id"`
	UniqueID     string `json:"uniqueId"`
	UniqueIDAlt  string `json:"unique_id"`
	Nickname     string `json:"nickname"`
	AvatarMedium string `json:"avatarMedium"`
	AvatarAlt    string `json:"avatar_medium"`
}

type wireTag struct {
	HashtagName string `json:"hashtagName"`
	Name        string `json:"name"`
}

type wireVideo struct {
	ID          string `json:"id"`
	VideoID     string `json:"video_id"`
	AwemeID     string `json:"aweme_id"`
	Desc        string `json:"desc"`
	Description string `json:"description"`
	Title       string `json:"title"`
	CreateTime  int64  `json:"createTime"`
	CreateTime2 int64  `json:"create_time"`

	Author wireAuthor `json:"author"`

	Stats struct {
		PlayCount    int64 `json:"playCount"`
		DiggCount    int64 `json:"diggCount"`
		CommentCount int64 `json:"commentCount"`
		ShareCount   int64 `json:"shareCount"`
	} `json:"stats"`
	PlayCount    int64 `json:"playCount"`
	PlayCount2   int64 `json:"play_count"`
	DiggCount    int64 `json:"diggCount"`
	DiggCount2   int64 `json:"digg_count"`
	CommentCount int64 `json:"commentCount"`
	CommentCnt2  int64 `json:"comment_count"`
	ShareCount   int64 `json:"shareCount"`
	ShareCount2  int64 `json:"share_count"`

	Video struct {
		PlayAddr     string `json:"playAddr"`
		DownloadAddr string `json:"downloadAddr"`
		Cover        string `json:"cover"`
		Duration     int64  `json:"duration"`
	} `json:"video"`
	PlayURL     string `json:"play_url"`
	Cover       string `json:"cover"`
	OriginCover string `json:"origin_cover"`
	Duration    int64  `json:"duration"`

	Music *struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		AuthorName string `json:"authorName"`
		PlayURL    string `json:"playUrl"`
	} `json:"music"`

	Challenges []wireTag `json:"challenges"`
	TextExtra  []wireTag `json:"textExtra"`
}

type soundsResponse struct {
	Sounds []wireSound `json:"sounds"`
	Data   []wireSound `json:"data"`
}

type wireSound struct {
	ID         string `json:"id"`
	MusicID    string `json:"musicId"`
	Title      string `json:"title"`
	MusicName  string `json:"musicName"`
	Author     string `json:"author"`
	AuthorName string `json:"authorName"`
	PlayURL    string `json:"playUrl"`
	MusicURL   string `json:"musicUrl"`
	CoverURL   string `json:"coverUrl"`
	CoverLarge string `json:"coverLarge"`
	Duration   int64  `json:"duration"`
	UsageCount int64  `json:"usageCount"`
	UserCount  int64  `json:"userCount"`
	Growth     string `json:"growth"`
	Category   string `json:"category"`
}

type hashtagsResponse struct {
	Hashtags []wireHashtag `json:"hashtags"`
	Data     []wireHashtag `json:"data"`
}

type wireHashtag struct {
	ID            string `json:"id"`
	ChallengeID   string `json:"challengeId"`
	Name          string `json:"name"`
	ChallengeName string `json:"challengeName"`
	Description   string `json:"description"`
	Desc          string `json:"desc"`
	ViewCount     int64  `json:"viewCount"`
	VideoCount    int64  `json:"videoCount"`
	Stats         struct {
		ViewCount  int64 `json:"viewCount"`
		VideoCount int64 `json:"videoCount"`
	} `json:"stats"`
}

type searchUserResponse struct {
	Data []wireSearchUser `json:"data"`
}

type wireSearchUser struct {
	User *struct {
		ID            string `json:"id"`
		UniqueID      string `json:"uniqueId"`
		Nickname      string `json:"nickname"`
		AvatarMedium  string `json:"avatarMedium"`
		FollowerCount int64  `json:"followerCount"`
		Verified      bool   `json:"verified"`
	} `json:"user"`
	ID            string `json:"id"`
	UniqueID      string `json:"uniqueId"`
	Nickname      string `json:"nickname"`
	AvatarMedium  string `json:"avatarMedium"`
	FollowerCount int64  `json:"followerCount"`
	Verified      bool   `json:"verified"`
}

type videoInfoResponse struct {
	Data *wireVideo `json:"data"`
}

type challengePostsResponse struct {
	Data struct {
		Videos []wireVideo `json:"videos"`
	} `json:"data"`
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt64(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// normalizeVideo is the single mapping from any provider video shape to the
// domain record. Missing counters become zero so the engine never sees nulls.
func normalizeVideo(v *wireVideo) model.Video {
	out := model.Video{
		ID:          firstString(v.ID, v.VideoID, v.AwemeID),
		Description: firstString(v.Desc, v.Description, v.Title),
		CreateTime:  firstInt64(v.CreateTime, v.CreateTime2),
		Author: model.VideoAuthor{
			ID:       v.Author.ID,
			Username: firstString(v.Author.UniqueID, v.Author.UniqueIDAlt),
			Nickname: v.Author.Nickname,
			Avatar:   firstString(v.Author.AvatarMedium, v.Author.AvatarAlt),
		},
		Stats: model.VideoStats{
			Views:    firstInt64(v.Stats.PlayCount, v.PlayCount2, v.PlayCount),
			Likes:    firstInt64(v.Stats.DiggCount, v.DiggCount2, v.DiggCount),
			Comments: firstInt64(v.Stats.CommentCount, v.CommentCnt2, v.CommentCount),
			Shares:   firstInt64(v.Stats.ShareCount, v.ShareCount2, v.ShareCount),
		},
		PlayURL:  firstString(v.Video.PlayAddr, v.PlayURL, v.Video.DownloadAddr),
		CoverURL: firstString(v.Video.Cover, v.Cover, v.OriginCover),
		Duration: firstInt64(v.Video.Duration, v.Duration),
		Hashtags: []string{},
	}
	if v.Music != nil {
		out.Music = &model.VideoMusic{
			ID:      v.Music.ID,
			Title:   v.Music.Title,
			Author:  v.Music.AuthorName,
			PlayURL: v.Music.PlayURL,
		}
	}
	tags := v.Challenges
	if len(tags) == 0 {
		tags = v.TextExtra
	}
	for _, tag := range tags {
		if name := firstString(tag.HashtagName, tag.Name); name != "" {
			out.Hashtags = append(out.Hashtags, name)
		}
	}
	return out
}

func normalizeProfile(username string, resp *userInfoResponse) *model.Profile {
	user := resp.Data.User
	stats := resp.Data.Stats
	return &model.Profile{
		ID:       firstString(user.ID, resp.ID),
		Username: firstString(user.UniqueID, username),
		Nickname: firstString(user.Nickname, username),
		Avatar:   firstString(user.AvatarLarger, user.AvatarMedium),
		Bio:      user.Signature,
		Verified: user.Verified,
		Stats: model.ProfileStats{
			Followers: stats.FollowerCount,
			Following: stats.FollowingCount,
			Likes:     stats.HeartCount,
			Videos:    stats.VideoCount,
		},
	}
}

func normalizeSound(s *wireSound) model.TrendingSound {
	return model.TrendingSound{
		ID:         firstString(s.ID, s.MusicID),
		Title:      firstString(s.Title, s.MusicName),
		Author:     firstString(s.Author, s.AuthorName),
		Category:   s.Category,
		PlayURL:    firstString(s.PlayURL, s.MusicURL),
		CoverURL:   firstString(s.CoverURL, s.CoverLarge),
		Duration:   s.Duration,
		UsageCount: firstInt64(s.UsageCount, s.UserCount),
		Growth:     s.Growth,
	}
}

func normalizeHashtag(h *wireHashtag) model.TrendingHashtag {
	return model.TrendingHashtag{
		ID:          firstString(h.ID, h.ChallengeID),
		Name:        firstString(h.Name, h.ChallengeName),
		Description: firstString(h.Description, h.Desc),
		ViewCount:   firstInt64(h.ViewCount, h.Stats.ViewCount),
		VideoCount:  firstInt64(h.VideoCount, h.Stats.VideoCount),
	}
}

func normalizeSearchUser(u *wireSearchUser) model.UserSearchResult {
	if u.User != nil {
		return model.UserSearchResult{
			ID:        u.User.ID,
			Username:  u.User.UniqueID,
			Nickname:  u.User.Nickname,
			Avatar:    u.User.AvatarMedium,
			Followers: u.User.FollowerCount,
			Verified:  u.User.Verified,
		}
	}
	return model.UserSearchResult{
		ID:        u.ID,
		Username:  u.UniqueID,
		Nickname:  u.Nickname,
		Avatar:    u.AvatarMedium,
		Followers: u.FollowerCount,
		Verified:  u.Verified,
	}
}
