package output

import (
	"fmt"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

// GenerateRobotsTxt generates a robots.txt file that allows the whole site
// and points crawlers at the sitemap.
func GenerateRobotsTxt(site *config.SiteDescriptor) string {
	var lines []string

	lines = append(lines, "User-agent: *")
	lines = append(lines, fmt.Sprintf("Allow: %s", site.BaseURL))
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("Sitemap: %s", site.AbsoluteURL("sitemap.xml")))

	return strings.Join(lines, "\n") + "\n"
}
