package summarizer

import (
	"fmt"
	"strings"
)

// maxLabelRows limits the label histogram table.
const maxLabelRows = 10

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator localizes headings and field names.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		if t != nil {
			f.translate = t
		}
	}
}

// WithVersion adds the program version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Session Summary"))

	// Input
	fmt.Fprintf(&b, "## %s\n\n", t("Input"))
	row := table(&b, t("Item"), t("Value"))
	if s.Input.Camera >= 0 && s.Input.Path == "" {
		row(t("Camera"), fmt.Sprintf("%d", s.Input.Camera))
	} else {
		row(t("Video"), s.Input.Path)
	}
	if s.Input.Width > 0 && s.Input.Height > 0 {
		row(t("Resolution"), fmt.Sprintf("%dx%d", s.Input.Width, s.Input.Height))
	}
	if s.Input.FPS > 0 {
		row(t("Frame Rate"), fmt.Sprintf("%.2f fps", s.Input.FPS))
	}
	if s.Input.Container != "" {
		row(t("Container"), s.Input.Container)
		row(t("Codec"), s.Input.Codec)
	}
	b.WriteString("\n")

	// Result
	fmt.Fprintf(&b, "## %s\n\n", t("Result"))
	row = table(&b, t("Item"), t("Value"))
	row(t("Exit"), t(s.Exit))
	row(t("Duration"), formatMs(s.DurationMs))
	row(t("Frames Read"), fmt.Sprintf("%d", s.Frames.Read))
	row(t("Inferences"), fmt.Sprintf("%d", s.Frames.Inferences))
	row(t("Frames Displayed"), fmt.Sprintf("%d", s.Frames.Displayed))
	if s.Settings.Record != "" || s.Frames.Recorded > 0 {
		row(t("Frames Recorded"), fmt.Sprintf("%d", s.Frames.Recorded))
	}
	if s.Labels.Last != "" {
		row(t("Last Prediction"), fmt.Sprintf("%s (%.3f)", s.Labels.Last, s.Labels.LastScore))
	} else {
		row(t("Last Prediction"), "N/A")
	}
	if s.Labels.LastText != "" && s.Labels.LastText != s.Labels.Last {
		row(t("Displayed As"), s.Labels.LastText)
	}
	if s.Labels.TranslationFallbacks > 0 {
		row(t("Translation Fallbacks"), fmt.Sprintf("%d", s.Labels.TranslationFallbacks))
	}
	if s.Labels.OverlayFallbacks > 0 {
		row(t("Overlay Fallbacks"), fmt.Sprintf("%d", s.Labels.OverlayFallbacks))
	}
	b.WriteString("\n")

	// Labels
	if len(s.Labels.Counts) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Labels"))
		row = table(&b, t("Label"), t("Windows"))
		for i, c := range s.Labels.Counts {
			if i == maxLabelRows {
				row("…", fmt.Sprintf("%d", len(s.Labels.Counts)-maxLabelRows))
				break
			}
			row(c.Label, fmt.Sprintf("%d", c.Count))
		}
		b.WriteString("\n")
	}

	// Settings
	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	row = table(&b, t("Item"), t("Value"))
	row(t("Language"), s.Settings.Language)
	if s.Settings.WindowSize > 0 {
		row(t("Window"), fmt.Sprintf("%d", s.Settings.WindowSize))
	}
	if s.Settings.FrameWidth > 0 {
		row(t("Frame Size"), fmt.Sprintf("%dx%d", s.Settings.FrameWidth, s.Settings.FrameHeight))
	}
	if s.Settings.Source != "" {
		row(t("Source Backend"), s.Settings.Source)
	}
	if s.Settings.Translation != "" {
		row(t("Translation Backend"), s.Settings.Translation)
	}
	if s.Settings.Record != "" {
		rec := s.Settings.Record
		if s.Settings.RecordBytes > 0 {
			rec += " (" + formatBytes(s.Settings.RecordBytes) + ")"
		}
		row(t("Recording"), rec)
	}
	b.WriteString("\n")

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if f.version != "" {
		footer += fmt.Sprintf(" (harview %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

// table writes a two-column header and returns a row writer.
func table(b *strings.Builder, left, right string) func(string, string) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", left, right)
	return func(k, v string) {
		fmt.Fprintf(b, "| %s | %s |\n", k, escape(v))
	}
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatMs(ms int) string {
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}
	return fmt.Sprintf("%.1f s", float64(ms)/1000)
}

// formatBytes renders a size with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
