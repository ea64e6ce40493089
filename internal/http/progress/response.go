package progress

import (
	"github.com/TheXbomber/budgify-server/internal/progress"
)

type statusResponse struct {
	Level          int      `json:"level"`
	XP             int      `json:"xp"`
	XPForNextLevel int      `json:"xp_for_next_level"`
	UnlockedThemes []string `json:"unlocked_themes"`
}

func toStatusResponse(s *progress.Status) statusResponse {
	themes := s.UnlockedThemes
	if themes == nil {
		themes = []string{}
	}

	return statusResponse{
		Level:          s.Level,
		XP:             s.XP,
		XPForNextLevel: s.XPForNextLevel,
		UnlockedThemes: themes,
	}
}

type themeResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	UnlockLevel int    `json:"unlock_level"`
	Unlocked    bool   `json:"unlocked"`
}
