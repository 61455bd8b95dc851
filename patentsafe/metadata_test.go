package patentsafe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amphora/patentsafe-submit/errorx"
)

func TestParseTag(t *testing.T) {
	for k, tc := range []struct {
		value       string
		expected    Tag
		errExpected bool
	}{
		{value: "Project,Apollo", expected: Tag{Name: "Project", Value: "Apollo"}},
		{value: "Notes,one, two", expected: Tag{Name: "Notes", Value: "one, two"}},
		{value: "Empty,", expected: Tag{Name: "Empty", Value: ""}},
		{value: "nocomma", errExpected: true},
		{value: ",value", errExpected: true},
		{value: "", errExpected: true},
		{value: "Tabs,a\tb\r\nc", expected: Tag{Name: "Tabs", Value: "a\tb\r\nc"}},
		{value: "ctl,a\x01b", errExpected: true},
		{value: "utf8,b\xffc", errExpected: true},
		{value: "bo\x00m,x", errExpected: true},
	} {
		t.Run(fmt.Sprintf("case=%d", k), func(t *testing.T) {
			tag, err := ParseTag(tc.value)
			if tc.errExpected {
				require.Error(t, err)
				assert.True(t, errorx.IsInvalidArgumentError(err))
				assert.Contains(t, err.Error(), fmt.Sprintf("%q", tc.value))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tag)
		})
	}
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags([]string{"a,1", "b,2"})
	require.NoError(t, err)
	assert.Equal(t, []Tag{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, tags)

	_, err = ParseTags([]string{"a,1", "broken"})
	assert.True(t, errorx.IsInvalidArgumentError(err))
}

func TestEncodeMetadata(t *testing.T) {
	for k, tc := range []struct {
		tags     []Tag
		expected string
	}{
		{
			tags:     nil,
			expected: "",
		},
		{
			tags:     []Tag{{Name: "a&b", Value: "<x>"}},
			expected: `<metadata><tag name="a&amp;b">&lt;x&gt;</tag></metadata>`,
		},
		{
			tags:     []Tag{{Name: "Project", Value: "Apollo"}, {Name: "Lab", Value: ""}},
			expected: `<metadata><tag name="Project">Apollo</tag><tag name="Lab"></tag></metadata>`,
		},
		{
			tags:     []Tag{{Name: `say "hi"`, Value: `it's`}},
			expected: `<metadata><tag name="say &#34;hi&#34;">it&#39;s</tag></metadata>`,
		},
	} {
		t.Run(fmt.Sprintf("case=%d", k), func(t *testing.T) {
			out, err := EncodeMetadata(tc.tags)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestEncodeMetadata_InvalidText(t *testing.T) {
	for k, tags := range [][]Tag{
		{{Name: "ctl", Value: "a\x01b\xffc"}},
		{{Name: "ok", Value: "fine"}, {Name: "bad\x1b", Value: "x"}},
		{{Name: "surrogate", Value: string([]byte{0xed, 0xa0, 0x80})}},
	} {
		t.Run(fmt.Sprintf("case=%d", k), func(t *testing.T) {
			out, err := EncodeMetadata(tags)
			assert.True(t, errorx.IsInvalidArgumentError(err))
			assert.Empty(t, out)
		})
	}
}
