package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("kn", l10n.LexiconMap{
		// Session
		"Starting session":                  "ಅವಧಿ ಪ್ರಾರಂಭವಾಗುತ್ತಿದೆ",
		"Interrupted, shutting down...":     "ಅಡಚಣೆಯಾಗಿದೆ, ಮುಚ್ಚಲಾಗುತ್ತಿದೆ...",
		"Loop state: %s":                    "ಲೂಪ್ ಸ್ಥಿತಿ: %s",
		"Session ended: %s":                 "ಅವಧಿ ಮುಗಿದಿದೆ: %s",
		"Loaded %d labels from %s":          "%[2]s ನಿಂದ %[1]d ಲೇಬಲ್‌ಗಳನ್ನು ಲೋಡ್ ಮಾಡಲಾಗಿದೆ",
		"Loaded model %s":                   "ಮಾದರಿ %s ಲೋಡ್ ಆಗಿದೆ",
		"Font for %s not found at %s":       "%[1]s ಗಾಗಿ ಫಾಂಟ್ %[2]s ನಲ್ಲಿ ಸಿಗಲಿಲ್ಲ",
		"Translating with %s backend":       "%s ಬ್ಯಾಕೆಂಡ್ ಬಳಸಿ ಅನುವಾದಿಸಲಾಗುತ್ತಿದೆ",
		"Summary saved to %s":               "ಸಾರಾಂಶವನ್ನು %s ಗೆ ಉಳಿಸಲಾಗಿದೆ",
		"Failed to write summary: %s":       "ಸಾರಾಂಶ ಬರೆಯಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Failed to close recording: %s":     "ರೆಕಾರ್ಡಿಂಗ್ ಮುಚ್ಚಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Failed to close display: %s":       "ಪ್ರದರ್ಶನ ಮುಚ್ಚಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Failed to close translator: %s":    "ಅನುವಾದಕ ಮುಚ್ಚಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Failed to close model: %s":         "ಮಾದರಿ ಮುಚ್ಚಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Translation cache: %d hits, %d misses": "ಅನುವಾದ ಕ್ಯಾಶ್: %d ಹಿಟ್‌ಗಳು, %d ಮಿಸ್‌ಗಳು",

		// Input
		"Failed to open video %s: %s":                "ವೀಡಿಯೊ %s ತೆರೆಯಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Opened %s (%dx%d, %.1f fps)":                "%s ತೆರೆಯಲಾಗಿದೆ (%dx%d, %.1f fps)",
		"Container %s, codec %s, %dx%d, %d frames":   "ಕಂಟೇನರ್ %s, ಕೋಡೆಕ್ %s, %dx%d, %d ಫ್ರೇಮ್‌ಗಳು",
		"Probe skipped: %s":                          "ಪರಿಶೀಲನೆ ಬಿಡಲಾಗಿದೆ: %s",
		"Read failed, treating as end of stream: %s": "ಓದುವಿಕೆ ವಿಫಲವಾಗಿದೆ, ಸ್ಟ್ರೀಮ್ ಅಂತ್ಯವೆಂದು ಪರಿಗಣಿಸಲಾಗಿದೆ: %s",
		"Video finished after %d frames":             "%d ಫ್ರೇಮ್‌ಗಳ ನಂತರ ವೀಡಿಯೊ ಮುಗಿದಿದೆ",
		"Stopped by user after %d frames":            "%d ಫ್ರೇಮ್‌ಗಳ ನಂತರ ಬಳಕೆದಾರರಿಂದ ನಿಲ್ಲಿಸಲಾಗಿದೆ",

		// Output
		"Failed to load font %s: %s":     "ಫಾಂಟ್ %s ಲೋಡ್ ಮಾಡಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Failed to display frame %d: %s": "ಫ್ರೇಮ್ %d ಪ್ರದರ್ಶಿಸಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Recording disabled: %s":         "ರೆಕಾರ್ಡಿಂಗ್ ನಿಷ್ಕ್ರಿಯಗೊಳಿಸಲಾಗಿದೆ: %s",
		"Recording stopped: %s":          "ರೆಕಾರ್ಡಿಂಗ್ ನಿಲ್ಲಿಸಲಾಗಿದೆ: %s",
		"Recording to %s":                "%s ಗೆ ರೆಕಾರ್ಡ್ ಮಾಡಲಾಗುತ್ತಿದೆ",

		// Classify stage
		"Failed to classify frames: %s":       "ಫ್ರೇಮ್‌ಗಳನ್ನು ವರ್ಗೀಕರಿಸಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Predicted %s (index %d, score %.3f)": "ಊಹೆ %s (ಸೂಚ್ಯಂಕ %d, ಅಂಕ %.3f)",

		// Translate stage
		"Translation failed: %s": "ಅನುವಾದ ವಿಫಲವಾಗಿದೆ: %s",
		"Translation of %q to %s failed, showing original: %s": "%q ಅನ್ನು %s ಗೆ ಅನುವಾದಿಸಲು ವಿಫಲವಾಗಿದೆ, ಮೂಲವನ್ನು ತೋರಿಸಲಾಗುತ್ತಿದೆ: %s",

		// Overlay stage
		"Failed to draw label: %s":       "ಲೇಬಲ್ ಬರೆಯಲು ವಿಫಲವಾಗಿದೆ: %s",
		"Cannot draw %q with %s: %s":     "%q ಅನ್ನು %s ನೊಂದಿಗೆ ಬರೆಯಲು ಸಾಧ್ಯವಿಲ್ಲ: %s",
		"Drawing %q with built-in face":  "%q ಅನ್ನು ಅಂತರ್ನಿರ್ಮಿತ ಫಾಂಟ್‌ನೊಂದಿಗೆ ಬರೆಯಲಾಗುತ್ತಿದೆ",
	})
}
