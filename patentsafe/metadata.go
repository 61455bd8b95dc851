package patentsafe

import (
	"encoding/xml"
	"strings"
	"unicode/utf8"

	"github.com/amphora/patentsafe-submit/errorx"
)

// Tag is one metadata entry of a document.
type Tag struct {
	Name  string `xml:"name,attr" validate:"required"`
	Value string `xml:",chardata"`
}

type metadataDocument struct {
	XMLName xml.Name `xml:"metadata"`
	Tags    []Tag    `xml:"tag"`
}

// ParseTag parses the "tag,value" form used on the command line. Only the first comma separates,
// so values may contain commas.
func ParseTag(s string) (Tag, error) {
	name, value, ok := strings.Cut(s, ",")
	if !ok {
		return Tag{}, errorx.InvalidArgumentErrorf("metadata %q must be in the form tag,value", s)
	}
	if strings.TrimSpace(name) == "" {
		return Tag{}, errorx.InvalidArgumentErrorf("metadata %q has an empty tag name", s)
	}
	if !isXMLText(s) {
		return Tag{}, errorx.InvalidArgumentErrorf("metadata %q contains characters XML cannot carry", s)
	}
	return Tag{Name: name, Value: value}, nil
}

// isXMLText reports whether s is valid UTF-8 made only of characters allowed in an XML 1.0
// document. encoding/xml would replace the others with U+FFFD.
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= utf8.MaxRune:
		default:
			return false
		}
	}
	return true
}

func ParseTags(values []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(values))
	for _, v := range values {
		tag, err := ParseTag(v)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// EncodeMetadata renders tags as the metadata packet PatentSafe expects:
//
//	<metadata><tag name="NAME">VALUE</tag>...</metadata>
//
// Names and values are XML escaped. No tags give an empty string. Invalid UTF-8 and control
// characters other than tab, CR and LF are refused rather than replaced.
func EncodeMetadata(tags []Tag) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	for _, tag := range tags {
		if !isXMLText(tag.Name) || !isXMLText(tag.Value) {
			return "", errorx.InvalidArgumentErrorf("metadata tag %q contains characters XML cannot carry", tag.Name)
		}
	}

	out, err := xml.Marshal(metadataDocument{Tags: tags})
	if err != nil {
		return "", errorx.InvalidArgumentErrorf("cannot encode metadata").WithCause(err)
	}
	return string(out), nil
}
