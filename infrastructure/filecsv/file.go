package filecsv

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"pulse-metrics/domain/model"
)

// WriteVideos streams a video list as CSV, one row per video
func WriteVideos(w io.Writer, videos []model.Video) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "description", "created_at", "views", "likes", "comments", "shares"}); err != nil {
		return err
	}
	for _, v := range videos {
		row := []string{
			v.ID,
			v.Description,
			time.Unix(v.CreateTime, 0).UTC().Format(time.RFC3339),
			strconv.FormatInt(v.Stats.Views, 10),
			strconv.FormatInt(v.Stats.Likes, 10),
			strconv.FormatInt(v.Stats.Comments, 10),
			strconv.FormatInt(v.Stats.Shares, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSnapshots streams stat history as CSV, one row per daily reading
func WriteSnapshots(w io.Writer, snapshots []model.StatsSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"captured_at", "username", "followers", "likes", "videos", "total_views"}); err != nil {
		return err
	}
	for _, s := range snapshots {
		row := []string{
			s.CapturedAt.UTC().Format(time.RFC3339),
			s.Username,
			strconv.FormatInt(s.Followers, 10),
			strconv.FormatInt(s.Likes, 10),
			strconv.FormatInt(s.Videos, 10),
			strconv.FormatInt(s.TotalViews, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
