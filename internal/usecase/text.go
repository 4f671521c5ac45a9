package usecase

import (
	"regexp"
	"strings"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)

	youtubeURL = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
)

// Slugify はカテゴリ名から slug を作る。
// 小文字にして空白を "-" に、英数字と "-" 以外は落とす。
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugInvalid.ReplaceAllString(s, "")
}

// YouTubeID は動画URLから11文字のIDを取り出す。取れなければ "".
func YouTubeID(url string) string {
	m := youtubeURL.FindStringSubmatch(url)
	if len(m) < 3 || len(m[2]) != 11 {
		return ""
	}
	return m[2]
}
