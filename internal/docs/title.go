package docs

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docstats/internal/frontmatter"
	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/markdown"
)

// ResolveTitle picks the display title of df: the frontmatter title, else the
// first level-1 heading, else a title derived from the file name. Read or
// parse failures fall through to the file name.
func ResolveTitle(df DocFile) string {
	content, err := df.Read()
	if err != nil {
		slog.Debug("Title fallback to file name", logfields.File(df.RelativePath), logfields.Error(err))
		return FilenameTitle(df.Name)
	}
	return TitleFromContent(content, df.Name)
}

// TitleFromContent resolves a title from raw file content with name as the fallback.
func TitleFromContent(content []byte, name string) string {
	fm, body, had, err := frontmatter.Split(content)
	if err != nil {
		return FilenameTitle(name)
	}
	if had {
		fields, perr := frontmatter.ParseYAML(fm)
		if perr != nil {
			return FilenameTitle(name)
		}
		if title, ok := frontmatter.Title(fields); ok {
			return title
		}
	}
	if heading, ok := markdown.FirstHeading(body); ok {
		return heading
	}
	return FilenameTitle(name)
}

// FilenameTitle turns "my-vue-post" into "My Vue Post": hyphens become
// spaces and the first letter of each word is upper-cased, the rest untouched.
func FilenameTitle(name string) string {
	upper := cases.Upper(language.Und)
	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}
