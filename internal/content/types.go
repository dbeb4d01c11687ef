// Package content holds the post and author records the site is built from
// and loads them from a content directory.
package content

// Socials lists per-platform handles. All are optional.
type Socials struct {
	Twitter  string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
	GitLab   string `json:"gitlab,omitempty" yaml:"gitlab,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty" yaml:"linkedIn,omitempty"`
	Twitch   string `json:"twitch,omitempty" yaml:"twitch,omitempty"`
	Dribbble string `json:"dribbble,omitempty" yaml:"dribbble,omitempty"`
	Mastodon string `json:"mastodon,omitempty" yaml:"mastodon,omitempty"`
	Threads  string `json:"threads,omitempty" yaml:"threads,omitempty"`
	YouTube  string `json:"youtube,omitempty" yaml:"youtube,omitempty"`
	Cohost   string `json:"cohost,omitempty" yaml:"cohost,omitempty"`
}

// RoleInfo describes an author role such as "developer" or "translator".
type RoleInfo struct {
	ID         string `json:"id" yaml:"id"`
	PrettyName string `json:"prettyname" yaml:"prettyname"`
}

// LicenseInfo describes a content license.
type LicenseInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	LicenseURL  string `json:"licenceURL" yaml:"licenceURL"`
	FooterImg   string `json:"footerImg,omitempty" yaml:"footerImg,omitempty"`
	ExplainLink string `json:"explainLink,omitempty" yaml:"explainLink,omitempty"`
}

// RawUnicornInfo is an author profile as stored in the data files.
type RawUnicornInfo struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	FirstName    string   `json:"firstName" yaml:"firstName"`
	LastName     string   `json:"lastName" yaml:"lastName"`
	Description  string   `json:"description" yaml:"description"`
	Socials      Socials  `json:"socials" yaml:"socials"`
	Pronouns     string   `json:"pronouns,omitempty" yaml:"pronouns,omitempty"`
	ProfileImg   string   `json:"profileImg" yaml:"profileImg"`
	Color        string   `json:"color" yaml:"color"`
	Roles        []string `json:"roles" yaml:"roles"`
	Achievements []string `json:"achievements" yaml:"achievements"`
}

// ProfileImgMeta locates an author's profile image.
type ProfileImgMeta struct {
	// Relative to the unicorns image directory.
	RelativePath string `json:"relativePath"`
	// Relative to the site root.
	RelativeServerPath string `json:"relativeServerPath"`
	// Build-time only.
	AbsoluteFSPath string `json:"absoluteFSPath"`
	Height         int    `json:"height"`
	Width          int    `json:"width"`
}

// UnicornInfo is an author profile with build-time derived fields.
type UnicornInfo struct {
	RawUnicornInfo
	RolesMeta      []RoleInfo     `json:"rolesMeta"`
	ProfileImgMeta ProfileImgMeta `json:"profileImgMeta"`
}

// PostFrontmatter is the resolved frontmatter of a post.
type PostFrontmatter struct {
	Title       string        `json:"title"`
	Published   string        `json:"published"`
	Tags        []string      `json:"tags"`
	Edited      string        `json:"edited,omitempty"`
	Description string        `json:"description"`
	Authors     []UnicornInfo `json:"authors"`
	License     LicenseInfo   `json:"license"`
}

// PostFields holds fields derived from the post location.
type PostFields struct {
	Slug string `json:"slug"`
}

// WordCount holds counts derived from the rendered body.
type WordCount struct {
	Words int `json:"words"`
}

// PostInfo is a fully built post. It is read-only once built.
type PostInfo struct {
	ID          string          `json:"id"`
	Excerpt     string          `json:"excerpt"`
	HTML        string          `json:"html"`
	Frontmatter PostFrontmatter `json:"frontmatter"`
	Fields      PostFields      `json:"fields"`
	WordCount   WordCount       `json:"wordCount"`
}

// rawFrontmatter is the frontmatter as written by authors: people and
// licenses are referenced by id.
type rawFrontmatter struct {
	Title       string   `yaml:"title"`
	Published   string   `yaml:"published"`
	Tags        []string `yaml:"tags"`
	Edited      string   `yaml:"edited"`
	Description string   `yaml:"description"`
	Authors     []string `yaml:"authors"`
	License     string   `yaml:"license"`
}
