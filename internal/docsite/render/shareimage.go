package render

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Share image constants
const (
	svgWidth   = 1200
	svgHeight  = 600
	svgBG      = "#0b1a33"
	svgText    = "#f5f6f7"
	svgMuted   = "#9fb3d1"
	svgAccent  = "#2f6df6"
	svgAccent2 = "#4fd1c5"
)

// svgEscape escapes text for safe embedding in SVG.
func svgEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// truncate limits string length in runes with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "…"
}

// SocialCardSVG generates the social preview card used when the descriptor
// sets no themeConfig.image. The size matches the og:image dimensions.
func SocialCardSVG(siteName, tagline, url string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
  <rect width="%d" height="%d" fill="%s"/>
  <circle cx="1010" cy="300" r="150" fill="none" stroke="%s" stroke-width="24"/>
  <circle cx="1010" cy="300" r="50" fill="%s"/>
  <text x="80" y="270" font-family="Urbanist,system-ui,sans-serif" font-size="96" font-weight="700" fill="%s">%s</text>
  <text x="80" y="350" font-family="Urbanist,system-ui,sans-serif" font-size="36" fill="%s">%s</text>
  <text x="80" y="530" font-family="Overpass Mono,monospace" font-size="24" fill="%s">%s</text>
  <rect x="0" y="%d" width="%d" height="8" fill="url(#accent-grad)"/>
  <defs>
    <linearGradient id="accent-grad" x1="0" y1="0" x2="1" y2="0">
      <stop offset="0" stop-color="%s"/>
      <stop offset="1" stop-color="%s"/>
    </linearGradient>
  </defs>
</svg>`,
		svgWidth, svgHeight, svgWidth, svgHeight,
		svgWidth, svgHeight, svgBG,
		svgAccent, svgAccent2,
		svgText, svgEscape(truncate(siteName, 18)),
		svgMuted, svgEscape(truncate(tagline, 48)),
		svgMuted, svgEscape(truncate(url, 60)),
		svgHeight-8, svgWidth,
		svgAccent, svgAccent2,
	)
}
