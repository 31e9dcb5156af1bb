package content

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DateLayout is the front matter date format.
const DateLayout = "2006-01-02"

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// Field length limits.
const (
	maxTitleLength       = 300
	maxDescriptionLength = 1000
	maxSlugLength        = 200
)

// Post is the validated front matter of a blog post.
type Post struct {
	Title        string   `json:"title"`
	URLSlug      string   `json:"urlSlug,omitempty"`
	Date         string   `json:"date,omitempty"` // YYYY-MM-DD
	Tags         []string `json:"tags,omitempty"`
	Published    bool     `json:"published"`
	Description  string   `json:"description,omitempty"`
	CanonicalURL string   `json:"canonical_url,omitempty"`
}

// postFrontMatter is the undecoded shape of a post's front matter.
// Date stays untyped so YAML timestamps, strings and numbers can all be
// normalized before validation.
type postFrontMatter struct {
	Title        string   `yaml:"title"`
	URLSlug      string   `yaml:"urlSlug"`
	Date         any      `yaml:"date"`
	Tags         []string `yaml:"tags"`
	Published    *bool    `yaml:"published"`
	Description  string   `yaml:"description"`
	CanonicalURL string   `yaml:"canonical_url"`
}

// ParsePost splits src into front matter and markdown body, applies
// defaults and validates the result against the blog schema.
// Returns ErrInvalidFrontMatter if the front matter cannot be decoded and
// ErrSchema (wrapping validation.Errors) if a field is invalid.
func ParsePost(src []byte) (*Post, []byte, error) {
	var raw postFrontMatter
	body, err := splitFrontMatter(src, &raw)
	if err != nil {
		return nil, nil, err
	}

	post := &Post{
		Title:        raw.Title,
		URLSlug:      raw.URLSlug,
		Date:         NormalizeDate(raw.Date),
		Tags:         raw.Tags,
		Published:    true,
		Description:  raw.Description,
		CanonicalURL: raw.CanonicalURL,
	}
	if raw.Published != nil {
		post.Published = *raw.Published
	}

	if err := post.Validate(); err != nil {
		return nil, nil, err
	}
	return post, body, nil
}

// Validate checks the post against the blog schema.
func (p *Post) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&p.URLSlug, validation.Length(1, maxSlugLength), validation.Match(slugPattern)),
		validation.Field(&p.Date, validation.Match(datePattern)),
		validation.Field(&p.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&p.CanonicalURL, is.URL),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}

// Slug returns the post's URL slug: urlSlug when set, otherwise derived
// from the source file path.
func (p *Post) Slug(path string) string {
	if p.URLSlug != "" {
		return p.URLSlug
	}
	return SlugFromPath(path)
}

// Time parses Date. The zero time is returned for an empty date.
func (p *Post) Time() time.Time {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NormalizeDate turns a decoded front matter date into its string form.
// A timestamp becomes its UTC calendar date, a string is kept as written,
// nil becomes "" and any other scalar is formatted with fmt.
func NormalizeDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case time.Time:
		return d.UTC().Format(DateLayout)
	case *time.Time:
		if d == nil {
			return ""
		}
		return d.UTC().Format(DateLayout)
	case string:
		return d
	default:
		return fmt.Sprint(d)
	}
}
