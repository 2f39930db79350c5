package entities

// PvPStats tracks a character's arena record
type PvPStats struct {
	HonorPoints   int    `json:"honor_points"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	WinStreak     int    `json:"win_streak"`
	BestWinStreak int    `json:"best_win_streak"`
	TotalBattles  int    `json:"total_battles"`
	RankTier      string `json:"rank_tier"`
}

// OpponentSummary is a point-in-time snapshot of a possible opponent
type OpponentSummary struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Class        CharacterClass `json:"class"`
	Level        int            `json:"level"`
	HonorPoints  int            `json:"honor_points"`
	ProfileImage string         `json:"profile_image,omitempty"`
}

// SummaryOf snapshots a character for matchmaking
func SummaryOf(c *Character) OpponentSummary {
	return OpponentSummary{
		ID:           c.ID,
		Name:         c.Name,
		Class:        c.Class,
		Level:        c.Level,
		HonorPoints:  c.PvP.HonorPoints,
		ProfileImage: c.ProfileImage,
	}
}
