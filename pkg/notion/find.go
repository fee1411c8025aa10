package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// PlainText concatenates the plain text of a rich-text array.
func PlainText(rich []notionapi.RichText) string {
	var out string
	for _, rt := range rich {
		out += rt.PlainText
	}
	return out
}

// FindPageByExactTitle queries a database for a page whose title property
// matches the given value exactly. The match is case-sensitive: the API
// filter narrows candidates, and the title text is re-checked byte-for-byte
// so that distinct companies differing only in case are never merged.
// Returns nil (no error) when nothing matches.
func FindPageByExactTitle(ctx context.Context, c Client, dbID, titleProp, title string) (*notionapi.Page, error) {
	resp, err := c.QueryDatabase(ctx, dbID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: titleProp,
			RichText: &notionapi.TextFilterCondition{
				Equals: title,
			},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "notion: find page by title")
	}

	for i := range resp.Results {
		page := resp.Results[i]
		prop, ok := page.Properties[titleProp]
		if !ok {
			continue
		}
		tp, ok := prop.(*notionapi.TitleProperty)
		if !ok {
			continue
		}
		if PlainText(tp.Title) == title {
			return &page, nil
		}
	}
	return nil, nil
}
