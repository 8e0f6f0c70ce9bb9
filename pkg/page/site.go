package page

// Fixed third-party assets referenced by the shell. They are not
// configurable: the chrome is built against these exact toolkit versions.
const (
	BootstrapCSS           = "//netdna.bootstrapcdn.com/twitter-bootstrap/2.3.2/css/bootstrap-combined.no-icons.min.css"
	FontAwesomeCSS         = "//netdna.bootstrapcdn.com/font-awesome/3.2.1/css/font-awesome.min.css"
	HTML5ShivJS            = "//html5shim.googlecode.com/svn/trunk/html5.js"
	JQueryJS               = "//cdnjs.cloudflare.com/ajax/libs/jquery/1.10.2/jquery.min.js"
	BootstrapJS            = "//netdna.bootstrapcdn.com/twitter-bootstrap/2.3.2/js/bootstrap.min.js"
	TablesorterJS          = "//cdnjs.cloudflare.com/ajax/libs/jquery.tablesorter/2.10.8/js/jquery.tablesorter.min.js"
	TablesorterWidgetsJS   = "//cdnjs.cloudflare.com/ajax/libs/jquery.tablesorter/2.10.8/js/jquery.tablesorter.widgets.min.js"
	DefaultFaviconURL      = "/static/img/favicon.ico"
	DefaultTouchIconURL    = "/static/img/apple-touch-icon.png"
	DefaultCommitURLPrefix = "https://github.com/cfedermann/TrendMiner/commit/"
)

// Site describes the deployment specific text and links used by the chrome.
type Site struct {
	Brand       string `json:"brand" yaml:"brand" toml:"brand"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Author      string `json:"author" yaml:"author" toml:"author"`
	HomeURL     string `json:"homeUrl" yaml:"home_url" toml:"home_url"`
	LoginURL    string `json:"loginUrl" yaml:"login_url" toml:"login_url"`
	LogoutURL   string `json:"logoutUrl" yaml:"logout_url" toml:"logout_url"`
	CommitURL   string `json:"commitUrl" yaml:"commit_url" toml:"commit_url"`
	FooterText  string `json:"footerText" yaml:"footer_text" toml:"footer_text"`
}

// DefaultSite returns the TrendMiner demo values.
func DefaultSite() Site {
	return Site{
		Brand:       "TrendMiner",
		Description: "TrendMiner Demo Web Services",
		Author:      "Christian Federmann, Tim Krones",
		HomeURL:     "/",
		LoginURL:    "/login/",
		LogoutURL:   "/logout/",
		CommitURL:   DefaultCommitURLPrefix,
		FooterText:  "TrendMiner Demo Web Services, DFKI GmbH and Saarland University.",
	}
}

// WithDefaults fills every empty field from DefaultSite.
func (s Site) WithDefaults() Site {
	def := DefaultSite()
	if s.Brand == "" {
		s.Brand = def.Brand
	}
	if s.Description == "" {
		s.Description = def.Description
	}
	if s.Author == "" {
		s.Author = def.Author
	}
	if s.HomeURL == "" {
		s.HomeURL = def.HomeURL
	}
	if s.LoginURL == "" {
		s.LoginURL = def.LoginURL
	}
	if s.LogoutURL == "" {
		s.LogoutURL = def.LogoutURL
	}
	if s.CommitURL == "" {
		s.CommitURL = def.CommitURL
	}
	if s.FooterText == "" {
		s.FooterText = def.FooterText
	}
	return s
}
