package entity

import "testing"

func TestGuideSource(t *testing.T) {
	tests := []struct {
		name      string
		guideFile string
		guideURL  string
		mediaBase string
		want      string
	}{
		{"uploaded file wins", "guides/2025/01/02/abcd1234.mp4", "https://youtu.be/xyz789", "https://media.example.com/", "https://media.example.com/guides/2025/01/02/abcd1234.mp4"},
		{"falls back to url", "", "https://youtu.be/xyz789", "https://media.example.com/", "https://youtu.be/xyz789"},
		{"both absent", "", "", "https://media.example.com/", ""},
		{"no media base", "guides/a.mp4", "", "", "/guides/a.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &ZohoApp{GuideFile: tt.guideFile, GuideURL: tt.guideURL}
			if got := app.GuideSource(tt.mediaBase); got != tt.want {
				t.Errorf("GuideSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasUploadedIcon(t *testing.T) {
	app := &ZohoApp{Icon: "app_icons/2025/01/02/abcd1234.png"}
	if !app.HasUploadedIcon() {
		t.Error("expected uploaded icon to be detected")
	}

	app.Icon = "directory/icons/people.png"
	if app.HasUploadedIcon() {
		t.Error("static path should not be treated as uploaded media")
	}

	app.Icon = ""
	if app.HasUploadedIcon() {
		t.Error("empty icon should not be treated as uploaded media")
	}
}
