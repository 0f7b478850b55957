package classify

import "testing"

func TestApp_Productive(t *testing.T) {
	c := Default()
	for _, name := range []string{"Visual Studio Code", "GoLand", "iTerm2", "Slack", "Microsoft Excel"} {
		if got := c.App(name); got != Productive {
			t.Errorf("App(%q) = %q, want productive", name, got)
		}
	}
}

func TestApp_Distracting(t *testing.T) {
	c := Default()
	for _, name := range []string{"YouTube", "Netflix", "Steam", "TikTok"} {
		if got := c.App(name); got != Distracting {
			t.Errorf("App(%q) = %q, want distracting", name, got)
		}
	}
}

func TestApp_UnknownIsNeutral(t *testing.T) {
	c := Default()
	if got := c.App("Notepad-like-unknown-app"); got != Neutral {
		t.Errorf("App(unknown) = %q, want neutral", got)
	}
}

func TestApp_EmptyIsNeutral(t *testing.T) {
	c := Default()
	if got := c.App(""); got != Neutral {
		t.Errorf("App(\"\") = %q, want neutral", got)
	}
	if got := c.App("   "); got != Neutral {
		t.Errorf("App(whitespace) = %q, want neutral", got)
	}
}

func TestApp_CaseInsensitive(t *testing.T) {
	c := Default()
	if got := c.App("YOUTUBE"); got != Distracting {
		t.Errorf("App(YOUTUBE) = %q, want distracting", got)
	}
}

func TestApp_ProductiveWinsOverDistracting(t *testing.T) {
	// A name matching both lists resolves to the first check (productive).
	c := &Classifier{
		ProductiveApps:  []string{"studio"},
		DistractingApps: []string{"studio"},
	}
	if got := c.App("Android Studio"); got != Productive {
		t.Errorf("App(both-match) = %q, want productive", got)
	}
}

func TestWebsite_Categories(t *testing.T) {
	c := Default()
	cases := []struct {
		domain string
		want   Category
	}{
		{"github.com", Productive},
		{"stackoverflow.com", Productive},
		{"youtube.com", Distracting},
		{"reddit.com", Distracting},
		{"example.org", Neutral},
		{"", Neutral},
	}
	for _, tc := range cases {
		if got := c.Website(tc.domain); got != tc.want {
			t.Errorf("Website(%q) = %q, want %q", tc.domain, got, tc.want)
		}
	}
}

func TestExtend_CustomPatterns(t *testing.T) {
	c := Default()
	c.Extend([]string{"internal-crm"}, []string{"casualgame"}, nil, nil)
	if got := c.App("Internal-CRM Desktop"); got != Productive {
		t.Errorf("App(custom productive) = %q, want productive", got)
	}
	if got := c.App("CasualGame Launcher"); got != Distracting {
		t.Errorf("App(custom distracting) = %q, want distracting", got)
	}
}
