package tiktok

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"pulse-metrics/domain/model"
)

// Mock data for development without a RapidAPI key. Generators are seeded by
// their input so identical queries return identical data across calls.

func seededRand(parts ...string) *rand.Rand {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
	}
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func mockUserProfile(username string) *model.Profile {
	r := seededRand("profile", username)
	nickname := username
	if nickname != "" {
		nickname = strings.ToUpper(nickname[:1]) + nickname[1:]
	}
	return &model.Profile{
		ID:       "mock-" + username,
		Username: username,
		Nickname: nickname,
		Bio:      "This is a mock profile for development",
		Verified: false,
		Stats: model.ProfileStats{
			Followers: r.Int63n(1_000_000),
			Following: r.Int63n(1_000),
			Likes:     r.Int63n(5_000_000),
			Videos:    r.Int63n(500),
		},
	}
}

func mockUserVideos(username string) []model.Video {
	r := seededRand("videos", username)
	now := time.Now().Unix()
	out := make([]model.Video, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, model.Video{
			ID:          fmt.Sprintf("mock-video-%d", i),
			Description: fmt.Sprintf("Mock video %d by @%s", i+1, username),
			CreateTime:  now - int64(i)*86400,
			Author: model.VideoAuthor{
				ID:       "mock-author",
				Username: username,
				Nickname: username,
			},
			Stats: model.VideoStats{
				Views:    r.Int63n(500_000),
				Likes:    r.Int63n(50_000),
				Comments: r.Int63n(2_000),
				Shares:   r.Int63n(1_000),
			},
			Duration: r.Int63n(60) + 10,
			Hashtags: []string{"fyp", "viral", "trending"},
		})
	}
	return out
}

func mockVideo(id string, index int) model.Video {
	r := seededRand("video", id)
	return model.Video{
		ID:          fmt.Sprintf("mock-%s-%d", id, index),
		Description: fmt.Sprintf("Mock video detail for %s", id),
		CreateTime:  time.Now().Unix() - int64(index)*3600,
		Author: model.VideoAuthor{
			ID:       "mock-author",
			Username: "creator",
			Nickname: "Creator",
		},
		Stats: model.VideoStats{
			Views:    r.Int63n(10_000_000),
			Likes:    r.Int63n(1_000_000),
			Comments: r.Int63n(50_000),
			Shares:   r.Int63n(100_000),
		},
		Duration: 30,
		Hashtags: []string{"fyp", "trending", "viral"},
	}
}

func mockTrendingVideos() []model.Video {
	r := seededRand("trending-videos")
	now := time.Now().Unix()
	out := make([]model.Video, 0, 20)
	for i := 0; i < 20; i++ {
		out = append(out, model.Video{
			ID:          fmt.Sprintf("trending-%d", i),
			Description: fmt.Sprintf("Trending video #%d", i+1),
			CreateTime:  now - int64(i)*3600,
			Author: model.VideoAuthor{
				ID:       fmt.Sprintf("author-%d", i),
				Username: fmt.Sprintf("creator%d", i),
				Nickname: fmt.Sprintf("Creator %d", i),
			},
			Stats: model.VideoStats{
				Views:    r.Int63n(10_000_000),
				Likes:    r.Int63n(1_000_000),
				Comments: r.Int63n(50_000),
				Shares:   r.Int63n(100_000),
			},
			Duration: 30,
			Hashtags: []string{"fyp", "trending", "viral"},
		})
	}
	return out
}

var mockSoundSeeds = []struct {
	title    string
	author   string
	category string
}{
	{"Original Sound - @musicmaker", "musicmaker", "Music"},
	{"Aesthetic vibes remix", "dj_aesthetic", "Ambient"},
	{"Voiceover trending clip", "voiceguy", "Voice"},
	{"Dance challenge beat", "beatdrop", "Dance"},
	{"ASMR cooking sounds", "asmr_chef", "ASMR"},
	{"Chill lo-fi beats", "lofi_girl", "Music"},
	{"Comedy skit audio", "funnybone", "Comedy"},
	{"Motivational speech", "inspire_daily", "Motivation"},
}

func mockTrendingSounds(region string) []model.TrendingSound {
	r := seededRand("sounds", region)
	out := make([]model.TrendingSound, 0, len(mockSoundSeeds))
	for i, seed := range mockSoundSeeds {
		out = append(out, model.TrendingSound{
			ID:         fmt.Sprintf("sound-%d", i),
			Title:      seed.title,
			Author:     seed.author,
			Category:   seed.category,
			Duration:   r.Int63n(30) + 10,
			UsageCount: r.Int63n(5_000_000),
			Growth:     fmt.Sprintf("+%d%%", r.Intn(400)),
		})
	}
	return out
}

var mockHashtagNames = []string{
	"fyp", "viral", "trending", "foryou", "dance",
	"comedy", "food", "travel", "fashion", "fitness",
	"makeup", "pets", "music", "art", "diy",
}

func mockTrendingHashtags(region string) []model.TrendingHashtag {
	r := seededRand("hashtags", region)
	out := make([]model.TrendingHashtag, 0, len(mockHashtagNames))
	for i, name := range mockHashtagNames {
		out = append(out, model.TrendingHashtag{
			ID:          fmt.Sprintf("hashtag-%d", i),
			Name:        name,
			Description: "Trending hashtag #" + name,
			ViewCount:   r.Int63n(10_000_000_000),
			VideoCount:  r.Int63n(10_000_000),
		})
	}
	return out
}

func mockHashtagVideos(hashtag string) []model.Video {
	r := seededRand("hashtag-videos", hashtag)
	now := time.Now().Unix()
	out := make([]model.Video, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, model.Video{
			ID:          fmt.Sprintf("hashtag-%s-%d", hashtag, i),
			Description: fmt.Sprintf("Video %d tagged #%s", i+1, hashtag),
			CreateTime:  now - int64(i)*7200,
			Author: model.VideoAuthor{
				ID:       fmt.Sprintf("author-%d", i),
				Username: fmt.Sprintf("creator%d", i),
				Nickname: fmt.Sprintf("Creator %d", i),
			},
			Stats: model.VideoStats{
				Views:    r.Int63n(2_000_000),
				Likes:    r.Int63n(200_000),
				Comments: r.Int63n(10_000),
				Shares:   r.Int63n(20_000),
			},
			Duration: 30,
			Hashtags: []string{hashtag, "fyp"},
		})
	}
	return out
}
