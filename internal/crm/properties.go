package crm

import (
	"github.com/jomei/notionapi"
)

// richTextLimit is Notion's per-rich-text content cap.
const richTextLimit = 2000

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Cut on a rune boundary.
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: truncate(s, richTextLimit)},
	}}
}

func titleProp(s string) notionapi.TitleProperty {
	return notionapi.TitleProperty{Title: richText(s)}
}

func textProp(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{RichText: richText(s)}
}

func selectProp(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

func multiSelectProp(names []string) notionapi.MultiSelectProperty {
	opts := make([]notionapi.Option, 0, len(names))
	for _, n := range names {
		opts = append(opts, notionapi.Option{Name: n})
	}
	return notionapi.MultiSelectProperty{MultiSelect: opts}
}

func emailProp(s string) notionapi.EmailProperty {
	return notionapi.EmailProperty{Email: s}
}

func phoneProp(s string) notionapi.PhoneNumberProperty {
	return notionapi.PhoneNumberProperty{PhoneNumber: s}
}

func urlProp(s string) notionapi.URLProperty {
	return notionapi.URLProperty{URL: s}
}

func numberProp(n float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{Number: n}
}

func dateProp(d notionapi.Date) notionapi.DateProperty {
	return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

func relationProp(pageID string) notionapi.RelationProperty {
	return notionapi.RelationProperty{Relation: []notionapi.Relation{
		{ID: notionapi.PageID(pageID)},
	}}
}
