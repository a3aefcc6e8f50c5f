// Package cover finds a displayable image for a record through a fallback
// chain: explicit image property, well-known front-matter keys, then the
// record's embedded files.
package cover

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/notecal/notecal/pkg/property"
	"github.com/notecal/notecal/pkg/vault"
	log "github.com/sirupsen/logrus"
)

// Source names the tier of the fallback chain that produced the image.
type Source string

const (
	SourceProperty    Source = "property"
	SourceFrontMatter Source = "frontmatter"
	SourceEmbed       Source = "embed"
)

// Image is a resolved, displayable image.
type Image struct {
	URL    string
	Alt    string
	Source Source
}

// frontMatterKeys is the fixed ordered key list scanned when no explicit
// image property is configured.
var frontMatterKeys = []string{"cover", "image", "images", "thumbnail", "banner", "featured", "photo"}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".svg": true, ".avif": true, ".bmp": true,
}

var (
	wikiLinkPattern  = regexp.MustCompile(`^!?\[\[([^\]|]+)(?:\|[^\]]*)?\]\]$`)
	mdImagePattern   = regexp.MustCompile(`^!\[[^\]]*\]\(([^)\s]+)\)$`)
	externalURLRegex = regexp.MustCompile(`^https?://`)
)

// Resolve walks the fallback chain for rec. imageProperty may be empty.
// Failure at every tier returns ok=false; resolution never errors.
func Resolve(rec vault.Record, imageProperty string) (Image, bool) {
	if imageProperty != "" {
		if img, ok := resolveValue(rec, property.Of(rec, imageProperty)); ok {
			img.Source = SourceProperty
			return img, true
		}
	}

	for _, key := range frontMatterKeys {
		v := property.Of(rec, key)
		if v.IsAbsent() {
			continue
		}
		if img, ok := resolveValue(rec, v); ok {
			img.Source = SourceFrontMatter
			return img, true
		}
	}

	for _, embed := range rec.Embeds {
		if img, ok := resolveReference(rec, embed); ok {
			img.Source = SourceEmbed
			return img, true
		}
	}

	log.Tracef("no image resolved for %s", rec.Path)
	return Image{}, false
}

// resolveValue interprets a property value as an image reference. Lists
// recurse element by element in order until one resolves.
func resolveValue(rec vault.Record, v property.Value) (Image, bool) {
	if v.IsAbsent() {
		return Image{}, false
	}
	if list, ok := v.AsList(); ok {
		for _, item := range list {
			if img, ok := resolveValue(rec, item); ok {
				return img, true
			}
		}
		return Image{}, false
	}
	if ref, ok := v.AsFileRef(); ok {
		if isImagePath(ref) {
			return Image{URL: resourceURL(ref), Alt: path.Base(ref)}, true
		}
		return Image{}, false
	}
	if ref, ok := v.RefField(); ok {
		return resolveReference(rec, ref)
	}
	return resolveReference(rec, v.String())
}

// resolveReference resolves a raw string reference: a wiki link, a markdown
// image, an external URL, a data URI, or a path relative to the record.
func resolveReference(rec vault.Record, ref string) (Image, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Image{}, false
	}

	// Unwrap [[target]] / ![[target]] / ![alt](target).
	if m := wikiLinkPattern.FindStringSubmatch(ref); m != nil {
		ref = m[1]
	} else if m := mdImagePattern.FindStringSubmatch(ref); m != nil {
		ref = m[1]
	}

	// Strip a trailing block or section anchor, then surrounding quotes.
	if idx := strings.IndexAny(ref, "#^"); idx >= 0 {
		ref = ref[:idx]
	}
	ref = strings.Trim(ref, `"'`)
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Image{}, false
	}

	if externalURLRegex.MatchString(ref) || strings.HasPrefix(ref, "data:image/") {
		return Image{URL: ref, Alt: path.Base(ref)}, true
	}

	// Relative link against the record's own directory.
	resolved := path.Join(path.Dir(filepathToSlash(rec.Path)), filepathToSlash(ref))
	if !isImagePath(resolved) {
		return Image{}, false
	}
	return Image{URL: resourceURL(resolved), Alt: path.Base(resolved)}, true
}

func isImagePath(p string) bool {
	return imageExtensions[strings.ToLower(path.Ext(p))]
}

// resourceURL produces the URL under which the application serves vault
// files.
func resourceURL(vaultPath string) string {
	segments := strings.Split(filepathToSlash(vaultPath), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/vault/" + strings.Join(segments, "/")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
