package entity

import (
	"regexp"
	"strings"
)

var (
	youtubeIDRe     = regexp.MustCompile(`(?:v=|youtu\.be/|embed/|/v/)([A-Za-z0-9_-]{6,})`)
	youtubeBareIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	iframeSrcRe     = regexp.MustCompile(`src=["']([^"']+)["']`)
)

// ExtractYouTubeID 从输入中提取视频ID
// 支持裸ID、watch/短链/embed链接以及粘贴的iframe片段
func ExtractYouTubeID(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	// iframe片段取src属性
	if strings.Contains(value, "<iframe") {
		if m := iframeSrcRe.FindStringSubmatch(value); m != nil {
			value = m[1]
		}
	}

	// 直接粘贴的ID
	if youtubeBareIDRe.MatchString(value) {
		return value, true
	}

	if m := youtubeIDRe.FindStringSubmatch(value); m != nil {
		return m[1], true
	}

	return "", false
}
