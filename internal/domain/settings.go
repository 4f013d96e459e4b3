package domain

import "time"

// WinCondition selects how a match is won
type WinCondition string

const (
	// WinLastStanding ends the match when at most one player has lives left
	WinLastStanding WinCondition = "LAST_STANDING"
	// WinUseAllLetters ends the match when a player has collected all 26 letters
	WinUseAllLetters WinCondition = "USE_ALL_LETTERS"
)

// TurnMode selects the turn policy used once the match starts
type TurnMode string

const (
	// TurnSequential rotates a single active player
	TurnSequential TurnMode = "SEQUENTIAL"
	// TurnSimultaneous lets every player act each round
	TurnSimultaneous TurnMode = "SIMULTANEOUS"
)

// Settings holds the configurable match parameters and the roster. It is
// mutable only while the match sits in the settings phase.
type Settings struct {
	TurnTimeout  time.Duration `json:"turnTimeout"`
	WinCondition WinCondition  `json:"winCondition"`
	TurnMode     TurnMode      `json:"turnMode"`
	Players      []*Player     `json:"players"`
}

// DefaultSettings returns the settings a new match starts with
func DefaultSettings() Settings {
	return Settings{
		TurnTimeout:  5 * time.Second,
		WinCondition: WinLastStanding,
		TurnMode:     TurnSequential,
		Players:      []*Player{},
	}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	TurnTimeout  *time.Duration
	WinCondition *WinCondition
	TurnMode     *TurnMode
}
