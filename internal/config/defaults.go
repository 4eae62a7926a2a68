package config

const (
	defaultLogDir            = "~/.local/share/dotsync/logs"
	defaultStateDir          = "~/.local/share/dotsync/state"
	defaultAnkiURL           = "http://localhost:8765"
	defaultRequestTimeout    = 30
	defaultDeck              = "Chinese::CharsProps"
	defaultNoteType          = "ConnectDots"
	defaultMaxItemsPerNote   = 10
	defaultComponentMinCount = 3
	defaultSyllableMinCount  = 3
	defaultPhraseMinCount    = 3
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Anki: Anki{
			URL:            defaultAnkiURL,
			RequestTimeout: defaultRequestTimeout,
			Deck:           defaultDeck,
			NoteType:       defaultNoteType,
		},
		Sync: Sync{
			MaxItemsPerNote:        defaultMaxItemsPerNote,
			SoundComponentMinCount: defaultComponentMinCount,
			SyllableMinCount:       defaultSyllableMinCount,
			PhraseMinCount:         defaultPhraseMinCount,
		},
		Fields: Fields{
			LeftCandidates:  []string{"Traditional", "Hanzi"},
			RightCandidates: []string{"Meaning 2", "Meaning", "English"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
