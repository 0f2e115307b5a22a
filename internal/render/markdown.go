package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// ColorsEnabled reports whether styled terminal output should be used.
// Both NO_COLOR (any value) and TERM=dumb force the plain renderers, which
// is also how the render tests pin their expected output.
func ColorsEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// RenderMarkdown renders a ticket description for terminal display.
// With colors disabled, or when glamour cannot render the text, the raw
// markdown is returned so the description is never lost.
func RenderMarkdown(content string) string {
	if content == "" || !ColorsEnabled() {
		return content
	}

	rendered, err := glamour.RenderWithEnvironmentConfig(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(rendered)
}
