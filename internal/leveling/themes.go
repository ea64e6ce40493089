package leveling

// Theme is a UI color scheme gated behind a level. The set of unlocked
// themes only ever grows.
type Theme struct {
	Name        string
	DisplayName string
	UnlockLevel int
}

var themes = []Theme{
	{Name: "LIGHT", DisplayName: "Light", UnlockLevel: 1},
	{Name: "DARK", DisplayName: "Dark", UnlockLevel: 1},
	{Name: "MINTY_FRESH", DisplayName: "Minty Fresh", UnlockLevel: 2},
	{Name: "OCEAN_BLUE", DisplayName: "Ocean Blue", UnlockLevel: 3},
	{Name: "LIGHT_LAVENDER", DisplayName: "Lavender Bliss (Light)", UnlockLevel: 4},
	{Name: "DARK_LAVENDER", DisplayName: "Lavender Bliss (Dark)", UnlockLevel: 5},
	{Name: "SUNNY_CITRUS", DisplayName: "Sunny Citrus", UnlockLevel: 6},
	{Name: "FOREST_GREEN", DisplayName: "Forest Green", UnlockLevel: 7},
	{Name: "LIGHT_EARTHY", DisplayName: "Earthy Tones (Light)", UnlockLevel: 8},
	{Name: "DARK_EARTHY", DisplayName: "Earthy Tones (Dark)", UnlockLevel: 9},
	{Name: "ROSE_GOLD_TINT", DisplayName: "Rose Gold Tint", UnlockLevel: 10},
	{Name: "TEAL_AND_AMBER", DisplayName: "Teal and Amber", UnlockLevel: 11},
	{Name: "SUNSET_ORANGE", DisplayName: "Sunset Orange", UnlockLevel: 12},
	{Name: "CRIMSON_FOCUS", DisplayName: "Crimson Focus", UnlockLevel: 13},
	{Name: "DEEP_OCEAN_SLATE", DisplayName: "Deep Ocean Slate", UnlockLevel: 14},
	{Name: "CHARCOAL_AND_GOLD_DUST", DisplayName: "Charcoal and Gold Dust", UnlockLevel: 15},
}

// Themes returns the full theme table in unlock order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)

	return out
}

// ThemeNamesForLevel returns the names of every theme available at the
// given level.
func ThemeNamesForLevel(level int) []string {
	var names []string

	for _, t := range themes {
		if t.UnlockLevel <= level {
			names = append(names, t.Name)
		}
	}

	return names
}
