package content

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"

	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"
)

// Where profile images live: relative to the content directory on disk and
// to the site root when served.
const (
	unicornImageDir = "data"
	unicornServeDir = "/unicorns"
)

// DecodeUnicorns reads a YAML (or JSON) list of raw author profiles and
// validates each one.
func DecodeUnicorns(r io.Reader) ([]RawUnicornInfo, error) {
	var out []RawUnicornInfo
	if err := decodeList(r, &out); err != nil {
		return nil, fmt.Errorf("decode unicorns: %w", err)
	}
	for i, u := range out {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("unicorn %d (%q): %w", i, u.ID, err)
		}
	}
	return out, nil
}

// DecodeRoles reads a YAML (or JSON) list of roles.
func DecodeRoles(r io.Reader) ([]RoleInfo, error) {
	var out []RoleInfo
	if err := decodeList(r, &out); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	for i, role := range out {
		if err := role.Validate(); err != nil {
			return nil, fmt.Errorf("role %d (%q): %w", i, role.ID, err)
		}
	}
	return out, nil
}

// DecodeLicenses reads a YAML (or JSON) list of licenses.
func DecodeLicenses(r io.Reader) ([]LicenseInfo, error) {
	var out []LicenseInfo
	if err := decodeList(r, &out); err != nil {
		return nil, fmt.Errorf("decode licenses: %w", err)
	}
	for i, l := range out {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("license %d (%q): %w", i, l.ID, err)
		}
	}
	return out, nil
}

func decodeList(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ResolveUnicorns derives rolesMeta and profileImgMeta for each profile.
// contentDir is the directory the data files were read from; profile image
// paths are relative to its data subdirectory. Images that cannot be read
// leave width and height at zero.
func ResolveUnicorns(raw []RawUnicornInfo, roles []RoleInfo, contentDir string) ([]UnicornInfo, error) {
	byID := make(map[string]RoleInfo, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}

	out := make([]UnicornInfo, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, u := range raw {
		if seen[u.ID] {
			return nil, fmt.Errorf("duplicate unicorn id %q", u.ID)
		}
		seen[u.ID] = true

		info := UnicornInfo{RawUnicornInfo: u}
		for _, id := range u.Roles {
			role, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("unicorn %q: unknown role %q", u.ID, id)
			}
			info.RolesMeta = append(info.RolesMeta, role)
		}
		info.ProfileImgMeta = profileImgMeta(u.ProfileImg, contentDir)
		out = append(out, info)
	}
	return out, nil
}

func profileImgMeta(rel, contentDir string) ProfileImgMeta {
	clean := path.Clean("/" + filepath.ToSlash(rel))[1:]
	meta := ProfileImgMeta{
		RelativePath:       clean,
		RelativeServerPath: path.Join(unicornServeDir, clean),
	}
	if contentDir == "" {
		return meta
	}

	abs, err := filepath.Abs(filepath.Join(contentDir, unicornImageDir, filepath.FromSlash(clean)))
	if err != nil {
		return meta
	}
	meta.AbsoluteFSPath = abs

	f, err := os.Open(abs)
	if err != nil {
		return meta
	}
	defer f.Close()
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		meta.Width, meta.Height = cfg.Width, cfg.Height
	}
	return meta
}
