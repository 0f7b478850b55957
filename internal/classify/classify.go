// Package classify assigns productivity categories to applications and
// websites using ordered substring pattern lists.
package classify

import "strings"

// Category is the productivity label assigned to an app or website.
type Category string

const (
	Productive  Category = "productive"
	Neutral     Category = "neutral"
	Distracting Category = "distracting"
)

// defaultProductiveApps match development, office, and collaboration tools.
var defaultProductiveApps = []string{
	"code", "visual studio", "intellij", "pycharm", "webstorm", "goland",
	"xcode", "android studio", "sublime", "vim", "neovim", "emacs",
	"terminal", "iterm", "powershell", "cmd",
	"word", "excel", "powerpoint", "outlook", "onenote",
	"docs", "sheets", "slides",
	"notion", "obsidian", "evernote",
	"slack", "teams", "zoom", "meet",
	"figma", "sketch", "postman", "docker", "tableplus", "datagrip",
	"github", "gitlab", "sourcetree", "jira", "confluence", "linear",
}

// defaultDistractingApps match consumer media, social, and gaming apps.
var defaultDistractingApps = []string{
	"youtube", "netflix", "spotify", "vlc", "twitch",
	"facebook", "instagram", "twitter", "tiktok", "snapchat", "reddit",
	"whatsapp", "telegram", "messenger", "discord", "wechat",
	"steam", "epic games", "battle.net", "minecraft", "roblox",
	"solitaire", "candy crush",
}

// defaultProductiveSites match development platforms and work tools on the web.
var defaultProductiveSites = []string{
	"github.com", "gitlab.com", "bitbucket.org", "stackoverflow.com",
	"stackexchange.com", "developer.mozilla.org", "go.dev", "pkg.go.dev",
	"docs.google.com", "sheets.google.com", "drive.google.com",
	"notion.so", "atlassian.net", "jira.", "confluence.", "linear.app",
	"figma.com", "miro.com", "trello.com", "asana.com", "monday.com",
	"aws.amazon.com", "console.cloud.google.com", "portal.azure.com",
	"chat.openai.com", "claude.ai",
}

// defaultDistractingSites match entertainment and social media domains.
var defaultDistractingSites = []string{
	"youtube.com", "netflix.com", "twitch.tv", "hulu.com", "disneyplus.com",
	"facebook.com", "instagram.com", "twitter.com", "x.com", "tiktok.com",
	"reddit.com", "9gag.com", "buzzfeed.com", "pinterest.com",
	"espn.com", "bleacherreport.com",
	"amazon.com", "ebay.com", "aliexpress.com",
}

// Classifier holds the pattern lists used for category lookup. The zero
// value classifies everything as Neutral; use Default for the built-in lists.
type Classifier struct {
	ProductiveApps   []string
	DistractingApps  []string
	ProductiveSites  []string
	DistractingSites []string
}

// Default returns a Classifier with the built-in pattern lists.
func Default() *Classifier {
	return &Classifier{
		ProductiveApps:   defaultProductiveApps,
		DistractingApps:  defaultDistractingApps,
		ProductiveSites:  defaultProductiveSites,
		DistractingSites: defaultDistractingSites,
	}
}

// Extend appends custom patterns to the classifier's lists. Custom patterns
// are checked after the built-ins, preserving first-match-wins order.
func (c *Classifier) Extend(productiveApps, distractingApps, productiveSites, distractingSites []string) {
	c.ProductiveApps = append(c.ProductiveApps, productiveApps...)
	c.DistractingApps = append(c.DistractingApps, distractingApps...)
	c.ProductiveSites = append(c.ProductiveSites, productiveSites...)
	c.DistractingSites = append(c.DistractingSites, distractingSites...)
}

// App classifies an application name. The productive list is checked before
// the distracting list; no match returns Neutral.
func (c *Classifier) App(name string) Category {
	return match(name, c.ProductiveApps, c.DistractingApps)
}

// Website classifies a website domain.
func (c *Classifier) Website(domain string) Category {
	return match(domain, c.ProductiveSites, c.DistractingSites)
}

func match(input string, productive, distracting []string) Category {
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return Neutral
	}
	for _, p := range productive {
		if strings.Contains(lowered, p) {
			return Productive
		}
	}
	for _, p := range distracting {
		if strings.Contains(lowered, p) {
			return Distracting
		}
	}
	return Neutral
}
