// Package clips holds the pre-recorded voice lines of the app.
//
// The key set is closed and fixed at build time: every Key declared here
// must resolve to exactly one embedded WAV resource, and the Registry
// verifies that at construction. After that, lookups cannot fail.
package clips

// Key identifies one pre-recorded voice clip.
type Key string

// The full voice line set of the app. Adding a key here requires adding a
// matching data/<key>.wav recording.
const (
	KeyWelcome     Key = "welcome"
	KeyGoodbye     Key = "goodbye"
	KeyTapToStart  Key = "tap_to_start"
	KeyFindColor   Key = "find_color"
	KeyColorRed    Key = "color_red"
	KeyColorBlue   Key = "color_blue"
	KeyColorGreen  Key = "color_green"
	KeyColorYellow Key = "color_yellow"
	KeyGreatJob    Key = "great_job"
	KeyTryAgain    Key = "try_again"
	KeyClapPrompt  Key = "clap_prompt"
	KeyClapHeard   Key = "clap_heard"
	KeyNextSlide   Key = "next_slide"
	KeyRepeatClue  Key = "repeat_clue"
	KeyCelebrate   Key = "celebrate"
)

// Keys returns every declared clip key, in a stable order.
func Keys() []Key {
	return []Key{
		KeyWelcome,
		KeyGoodbye,
		KeyTapToStart,
		KeyFindColor,
		KeyColorRed,
		KeyColorBlue,
		KeyColorGreen,
		KeyColorYellow,
		KeyGreatJob,
		KeyTryAgain,
		KeyClapPrompt,
		KeyClapHeard,
		KeyNextSlide,
		KeyRepeatClue,
		KeyCelebrate,
	}
}

// Valid reports whether k is part of the declared key set.
func Valid(k Key) bool {
	_, ok := lines[k]
	return ok
}
