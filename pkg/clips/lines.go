// lines.go centralises the spoken text behind every clip. These are the
// canonical fallback lines handed to the synthesizer when a recording
// cannot play. Keep them short and direct; the TTS engine handles inflection.
package clips

var lines = map[Key]string{
	KeyWelcome:     "Hi there! Let's learn together.",
	KeyGoodbye:     "Bye bye! See you next time.",
	KeyTapToStart:  "Tap anywhere to start!",
	KeyFindColor:   "Can you find something colorful? Show it to me!",
	KeyColorRed:    "Red! Like a shiny apple.",
	KeyColorBlue:   "Blue! Like the big sky.",
	KeyColorGreen:  "Green! Like the grass.",
	KeyColorYellow: "Yellow! Like the sun.",
	KeyGreatJob:    "Great job! You did it!",
	KeyTryAgain:    "Almost! Let's try again.",
	KeyClapPrompt:  "Clap your hands as loud as you can!",
	KeyClapHeard:   "Wow, I heard that clap!",
	KeyNextSlide:   "Here comes the next one.",
	KeyRepeatClue:  "Listen again, here's the clue.",
	KeyCelebrate:   "Hooray! You finished everything!",
}

// Line returns the canonical spoken text for a clip key.
// Returns the empty string for unknown keys.
func Line(k Key) string {
	return lines[k]
}
