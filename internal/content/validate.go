package content

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	idFormat = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// Validate checks a raw author profile.
func (u RawUnicornInfo) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required, validation.Match(idFormat)),
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.ProfileImg, validation.Required),
		validation.Field(&u.Color, validation.Required, validation.Match(hexColor)),
		validation.Field(&u.Roles, validation.Required, validation.Each(validation.Required)),
	)
}

// Validate checks a role record.
func (r RoleInfo) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validation.Match(idFormat)),
		validation.Field(&r.PrettyName, validation.Required),
	)
}

// Validate checks a license record.
func (l LicenseInfo) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required),
		validation.Field(&l.Name, validation.Required),
		validation.Field(&l.LicenseURL, validation.Required),
	)
}

// Validate checks author-written frontmatter before ids are resolved.
func (f rawFrontmatter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Published, validation.Required, validation.By(isDate)),
		validation.Field(&f.Edited, validation.By(isDate)),
		validation.Field(&f.Description, validation.Length(0, 300)),
		validation.Field(&f.Authors, validation.Required, validation.Each(validation.Required)),
		validation.Field(&f.License, validation.Required),
	)
}

// accepted frontmatter date layouts
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate parses a frontmatter date.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := ParseDate(s); !ok {
		return validation.NewError("validation_is_date", "must be a date (YYYY-MM-DD or RFC 3339)")
	}
	return nil
}
