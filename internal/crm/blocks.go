package crm

import (
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

func headingBlock(text string) notionapi.Block {
	return notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading2,
		},
		Heading2: notionapi.Heading{RichText: richText(text)},
	}
}

func paragraphBlock(text string) notionapi.Block {
	return notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{RichText: richText(text)},
	}
}

func bulletBlock(text string) notionapi.Block {
	return notionapi.BulletedListItemBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeBulletedListItem,
		},
		BulletedListItem: notionapi.ListItem{RichText: richText(text)},
	}
}

func numberedBlock(text string) notionapi.Block {
	return notionapi.NumberedListItemBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeNumberedListItem,
		},
		NumberedListItem: notionapi.ListItem{RichText: richText(text)},
	}
}

// textToBlocks converts long-form generated text into content blocks,
// preserving heading, bullet, and numbered-list lines. Paragraphs longer
// than the rich-text cap are split across blocks.
func textToBlocks(text string) []notionapi.Block {
	var blocks []notionapi.Block

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "#"):
			blocks = append(blocks, headingBlock(strings.TrimSpace(strings.TrimLeft(trimmed, "# "))))
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			blocks = append(blocks, bulletBlock(trimmed[2:]))
		case startsNumbered(trimmed):
			blocks = append(blocks, numberedBlock(stripNumber(trimmed)))
		default:
			for len(trimmed) > richTextLimit {
				cut := truncate(trimmed, richTextLimit)
				blocks = append(blocks, paragraphBlock(cut))
				trimmed = trimmed[len(cut):]
			}
			blocks = append(blocks, paragraphBlock(trimmed))
		}
	}

	return blocks
}

func startsNumbered(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')')
}

func stripNumber(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && (s[i] == '.' || s[i] == ')') {
		i++
	}
	return strings.TrimSpace(s[i:])
}

// proposalBlocks renders the proposal document body. Sections with no
// source content are omitted.
func proposalBlocks(sub *model.LeadSubmission, score *model.LeadScore, research *model.ResearchResult) []notionapi.Block {
	var blocks []notionapi.Block

	blocks = append(blocks, headingBlock("Overview"))
	blocks = append(blocks, paragraphBlock(fmt.Sprintf(
		"Draft automation proposal for %s (%s, %s employees), prepared from their intake submission.",
		sub.Company, sub.Industry, sub.BusinessSize)))
	if sub.ProjectDescription != "" {
		blocks = append(blocks, paragraphBlock(sub.ProjectDescription))
	}

	if score != nil {
		blocks = append(blocks, headingBlock("Lead Score"))
		blocks = append(blocks, paragraphBlock(fmt.Sprintf(
			"%d / %d (%s)", score.TotalScore, score.MaxScore, score.Rating)))
		for _, entry := range score.Breakdown {
			blocks = append(blocks, bulletBlock(fmt.Sprintf(
				"%s: %d/%d - %s", entry.Category, entry.Score, entry.MaxScore, entry.Reason)))
		}
	}

	if research != nil && len(research.AutomationOpportunities) > 0 {
		blocks = append(blocks, headingBlock("Automation Opportunities"))
		for _, opp := range research.AutomationOpportunities {
			blocks = append(blocks, bulletBlock(opp))
		}
	}

	if len(sub.ProjectIdeas) > 0 {
		blocks = append(blocks, headingBlock("Project Ideas"))
		for _, idea := range sub.ProjectIdeas {
			text := idea.Title
			if idea.Description != "" {
				text += ": " + idea.Description
			}
			blocks = append(blocks, numberedBlock(text))
		}
	}

	if research != nil && research.ROIAnalysis != "" {
		blocks = append(blocks, headingBlock("ROI Analysis"))
		blocks = append(blocks, paragraphBlock(research.ROIAnalysis))
	}

	if research != nil && research.ImplementationStrategy != "" {
		blocks = append(blocks, headingBlock("Implementation Strategy"))
		blocks = append(blocks, paragraphBlock(research.ImplementationStrategy))
	}

	if sub.SuccessMetrics != "" {
		blocks = append(blocks, headingBlock("Success Metrics"))
		blocks = append(blocks, paragraphBlock(sub.SuccessMetrics))
	}

	return blocks
}
