// Package main provides localization for the harview CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Kannada translations for CLI, window and summary text.
	l10n.Register("kn", l10n.LexiconMap{
		// Flag categories
		"Input":       "ಇನ್‌ಪುಟ್",
		"Model":       "ಮಾದರಿ",
		"Overlay":     "ಲೇಬಲ್ ಪ್ರದರ್ಶನ",
		"Translation": "ಅನುವಾದ",
		"Output":      "ಔಟ್‌ಪುಟ್",
		"Logging":     "ಲಾಗ್",

		// Commands
		"Recognize human activities in videos and show the labels in your language": "ವೀಡಿಯೊಗಳಲ್ಲಿ ಮಾನವ ಚಟುವಟಿಕೆಗಳನ್ನು ಗುರುತಿಸಿ ನಿಮ್ಮ ಭಾಷೆಯಲ್ಲಿ ತೋರಿಸುತ್ತದೆ",
		"Choose a video and language in a window, then start recognition":          "ಕಿಟಕಿಯಲ್ಲಿ ವೀಡಿಯೊ ಮತ್ತು ಭಾಷೆಯನ್ನು ಆರಿಸಿ, ನಂತರ ಗುರುತಿಸುವಿಕೆ ಪ್ರಾರಂಭಿಸಿ",
		"Run recognition on a video file or camera":                                "ವೀಡಿಯೊ ಫೈಲ್ ಅಥವಾ ಕ್ಯಾಮೆರಾದಲ್ಲಿ ಗುರುತಿಸುವಿಕೆ ನಡೆಸಿ",
		"Print the activity labels the model predicts":                             "ಮಾದರಿ ಊಹಿಸುವ ಚಟುವಟಿಕೆ ಲೇಬಲ್‌ಗಳನ್ನು ಮುದ್ರಿಸಿ",
		"Show version information":                                                 "ಆವೃತ್ತಿ ಮಾಹಿತಿಯನ್ನು ತೋರಿಸಿ",
		"harview version %s":                                                       "harview ಆವೃತ್ತಿ %s",

		// Flags
		"YAML configuration file":                               "YAML ಸಂರಚನಾ ಫೈಲ್",
		"Video file, or a camera index (default: camera 0)":     "ವೀಡಿಯೊ ಫೈಲ್ ಅಥವಾ ಕ್ಯಾಮೆರಾ ಸಂಖ್ಯೆ (ಡೀಫಾಲ್ಟ್: ಕ್ಯಾಮೆರಾ 0)",
		"Decoding backend (opencv, ffmpeg)":                     "ಡಿಕೋಡಿಂಗ್ ಬ್ಯಾಕೆಂಡ್ (opencv, ffmpeg)",
		"Stop after this many frames (0 = until the end)":       "ಇಷ್ಟು ಫ್ರೇಮ್‌ಗಳ ನಂತರ ನಿಲ್ಲಿಸಿ (0 = ಕೊನೆಯವರೆಗೆ)",
		"Frames per prediction (default: 16)":                   "ಪ್ರತಿ ಊಹೆಗೆ ಫ್ರೇಮ್‌ಗಳು (ಡೀಫಾಲ್ಟ್: 16)",
		"ONNX action recognition model":                         "ONNX ಚಟುವಟಿಕೆ ಗುರುತಿಸುವ ಮಾದರಿ",
		"Label file, one label per line":                        "ಲೇಬಲ್ ಫೈಲ್, ಪ್ರತಿ ಸಾಲಿಗೆ ಒಂದು ಲೇಬಲ್",
		"Run the model on CUDA":                                 "ಮಾದರಿಯನ್ನು CUDA ಮೇಲೆ ಚಲಾಯಿಸಿ",
		"Display language (en, kn)":                             "ಪ್ರದರ್ಶನ ಭಾಷೆ (en, kn)",
		"Font file for the display language":                    "ಪ್ರದರ್ಶನ ಭಾಷೆಯ ಫಾಂಟ್ ಫೈಲ್",
		"Font size in points (default: 32)":                     "ಫಾಂಟ್ ಗಾತ್ರ ಪಾಯಿಂಟ್‌ಗಳಲ್ಲಿ (ಡೀಫಾಲ್ಟ್: 32)",
		"Translation backend (web, cloud, none)":                "ಅನುವಾದ ಬ್ಯಾಕೆಂಡ್ (web, cloud, none)",
		"Time limit for one translation (default: 3s)":          "ಒಂದು ಅನುವಾದದ ಸಮಯ ಮಿತಿ (ಡೀಫಾಲ್ಟ್: 3s)",
		"Translate every prediction again":                      "ಪ್ರತಿ ಊಹೆಯನ್ನು ಮತ್ತೆ ಅನುವಾದಿಸಿ",
		"Save the annotated video as MP4":                       "ಲೇಬಲ್ ಸಹಿತ ವೀಡಿಯೊವನ್ನು MP4 ಆಗಿ ಉಳಿಸಿ",
		"Save annotated frames as PNG files":                    "ಲೇಬಲ್ ಸಹಿತ ಫ್ರೇಮ್‌ಗಳನ್ನು PNG ಫೈಲ್‌ಗಳಾಗಿ ಉಳಿಸಿ",
		"Write a Markdown session summary":                      "Markdown ಅವಧಿ ಸಾರಾಂಶ ಬರೆಯಿರಿ",
		"Do not open a display window":                          "ಪ್ರದರ್ಶನ ಕಿಟಕಿ ತೆರೆಯಬೇಡಿ",
		"Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)": "ffmpeg ಮಾರ್ಗ (ಇಲ್ಲದಿದ್ದರೆ FFMPEG_PATH, ನಂತರ PATH)",
		"Log level (debug, info, warn, error)":                  "ಲಾಗ್ ಮಟ್ಟ (debug, info, warn, error)",
		"Log format (console, tint)":                            "ಲಾಗ್ ಸ್ವರೂಪ (console, tint)",
		"Suppress all log output":                               "ಎಲ್ಲಾ ಲಾಗ್ ಔಟ್‌ಪುಟ್ ಅಡಗಿಸಿ",

		// Window
		"Human Activity Recognition": "ಮಾನವ ಚಟುವಟಿಕೆ ಗುರುತಿಸುವಿಕೆ",
		"Select Language:":           "ಭಾಷೆ ಆಯ್ಕೆಮಾಡಿ:",
		"Select Video":               "ವೀಡಿಯೊ ಆಯ್ಕೆಮಾಡಿ",
		"No file selected":           "ಯಾವುದೇ ಫೈಲ್ ಆಯ್ಕೆಯಾಗಿಲ್ಲ",
		"Start":                      "ಪ್ರಾರಂಭಿಸಿ",
		"Running...":                 "ಚಾಲನೆಯಲ್ಲಿದೆ...",
		"Finished":                   "ಮುಗಿದಿದೆ",
		"Error: %s":                  "ದೋಷ: %s",
		"Session failed: %s":         "ಅವಧಿ ವಿಫಲವಾಗಿದೆ: %s",
		"File dialog failed: %s":     "ಫೈಲ್ ಸಂವಾದ ವಿಫಲವಾಗಿದೆ: %s",

		// Summary
		"Session Summary":       "ಅವಧಿಯ ಸಾರಾಂಶ",
		"Item":                  "ಅಂಶ",
		"Value":                 "ಮೌಲ್ಯ",
		"Camera":                "ಕ್ಯಾಮೆರಾ",
		"Video":                 "ವೀಡಿಯೊ",
		"Resolution":            "ರೆಸಲ್ಯೂಶನ್",
		"Frame Rate":            "ಫ್ರೇಮ್ ದರ",
		"Container":             "ಕಂಟೇನರ್",
		"Codec":                 "ಕೋಡೆಕ್",
		"Result":                "ಫಲಿತಾಂಶ",
		"Exit":                  "ಮುಕ್ತಾಯ",
		"Duration":              "ಅವಧಿ",
		"Frames Read":           "ಓದಿದ ಫ್ರೇಮ್‌ಗಳು",
		"Inferences":            "ಊಹೆಗಳು",
		"Frames Displayed":      "ಪ್ರದರ್ಶಿತ ಫ್ರೇಮ್‌ಗಳು",
		"Frames Recorded":       "ರೆಕಾರ್ಡ್ ಮಾಡಿದ ಫ್ರೇಮ್‌ಗಳು",
		"Last Prediction":       "ಕೊನೆಯ ಊಹೆ",
		"Displayed As":          "ಪ್ರದರ್ಶಿಸಿದ ರೂಪ",
		"Translation Fallbacks": "ಅನುವಾದ ಹಿನ್ನಡೆಗಳು",
		"Overlay Fallbacks":     "ಲೇಬಲ್ ಹಿನ್ನಡೆಗಳು",
		"Labels":                "ಲೇಬಲ್‌ಗಳು",
		"Label":                 "ಲೇಬಲ್",
		"Windows":               "ವಿಂಡೋಗಳು",
		"Settings":              "ಸೆಟ್ಟಿಂಗ್‌ಗಳು",
		"Language":              "ಭಾಷೆ",
		"Window":                "ವಿಂಡೋ",
		"Frame Size":            "ಫ್ರೇಮ್ ಗಾತ್ರ",
		"Source Backend":        "ಮೂಲ ಬ್ಯಾಕೆಂಡ್",
		"Translation Backend":   "ಅನುವಾದ ಬ್ಯಾಕೆಂಡ್",
		"Recording":             "ರೆಕಾರ್ಡಿಂಗ್",
		"Generated at":          "ರಚಿಸಿದ ಸಮಯ",
		"end of stream":         "ಸ್ಟ್ರೀಮ್ ಅಂತ್ಯ",
		"quit by user":          "ಬಳಕೆದಾರರಿಂದ ನಿಲ್ಲಿಸಲಾಗಿದೆ",
		"canceled":              "ರದ್ದುಗೊಳಿಸಲಾಗಿದೆ",
		"error":                 "ದೋಷ",
	})
}
