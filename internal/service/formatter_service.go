package service

import (
	"fmt"
	"strings"
	"time"

	"readwise-notifier/internal/domain"
)

// maxTextRunes bounds the highlight text rendered into the message.
const maxTextRunes = 1000

// truncationMarker is appended when the text is cut.
const truncationMarker = "..."

// genericCategories are category labels too unspecific to show.
var genericCategories = map[string]bool{
	"books":    true,
	"articles": true,
}

// FormatterService renders a highlight and its book metadata into a Slack
// Block Kit message. Format is pure: the reference time is an explicit
// parameter, so identical inputs always produce identical messages.
type FormatterService struct{}

func NewFormatterService() *FormatterService {
	return &FormatterService{}
}

// Format builds the message for one highlight. book may be the zero value
// when the highlight's book could not be resolved; bookTitle carries the
// placeholder in that case.
func (s *FormatterService) Format(h domain.Highlight, bookTitle string, book domain.Book, now time.Time) domain.Message {
	text := truncateRunes(h.Text, maxTextRunes)

	blocks := []domain.Block{
		domain.NewHeaderBlock("📖 Highlight of the Day"),
		s.contentBlock(text, bookTitle, book),
	}

	if note := strings.TrimSpace(h.Note); note != "" {
		blocks = append(blocks, domain.NewSectionBlock("📝 *Note:* "+note))
	}

	if elements := s.contextElements(h, now); len(elements) > 0 {
		blocks = append(blocks, domain.NewContextBlock(elements))
	}

	blocks = append(blocks, domain.NewDividerBlock())

	if buttons := s.actionButtons(h, book); len(buttons) > 0 {
		blocks = append(blocks, domain.NewActionsBlock(buttons))
	}

	return domain.Message{Blocks: blocks}
}

// contentBlock pairs the book line with the quoted highlight text and, when a
// cover is known, attaches it as the block's accessory.
func (s *FormatterService) contentBlock(text, bookTitle string, book domain.Book) domain.SectionBlock {
	var sb strings.Builder
	sb.WriteString("*" + bookTitle + "*")
	if book.Author != nil && *book.Author != "" {
		sb.WriteString(" by " + *book.Author)
	}
	if book.Category != nil && *book.Category != "" && !genericCategories[strings.ToLower(*book.Category)] {
		sb.WriteString(" (" + *book.Category + ")")
	}
	sb.WriteString("\n>" + strings.ReplaceAll(text, "\n", "\n>"))

	block := domain.NewSectionBlock(sb.String())
	if book.CoverImageURL != nil && *book.CoverImageURL != "" {
		block.Accessory = &domain.ImageAccessory{
			Type:     "image",
			ImageURL: *book.CoverImageURL,
			AltText:  bookTitle,
		}
	}
	return block
}

// contextElements aggregates the metadata line: relative age, location, tags
// and the deep link. Sub-elements with no source data are omitted.
func (s *FormatterService) contextElements(h domain.Highlight, now time.Time) []domain.TextObject {
	var elements []domain.TextObject

	if created, ok := h.CreatedTime(); ok {
		elements = append(elements, domain.Markdown(
			fmt.Sprintf("🗓️ %s (%s)", relativeAge(created, now), created.Format("Jan 2, 2006"))))
	}

	if h.Location != nil && *h.Location > 0 {
		elements = append(elements, domain.Markdown(fmt.Sprintf("📍 Location %d", *h.Location)))
	}

	if names := h.TagNames(); len(names) > 0 {
		elements = append(elements, domain.Markdown("🏷️ "+strings.Join(names, ", ")))
	}

	elements = append(elements, domain.Markdown(
		fmt.Sprintf("<https://readwise.io/open/%d|View in Readwise>", h.ID)))

	return elements
}

// actionButtons returns zero, one or two link buttons. The source button only
// appears for web-reachable URLs.
func (s *FormatterService) actionButtons(h domain.Highlight, book domain.Book) []domain.ButtonElement {
	var buttons []domain.ButtonElement

	if h.BookID != nil {
		buttons = append(buttons, domain.NewButtonElement("📚 View Book",
			fmt.Sprintf("https://readwise.io/bookreview/%d", *h.BookID)))
	}

	if book.SourceURL != nil && isWebURL(*book.SourceURL) {
		buttons = append(buttons, domain.NewButtonElement("🔗 Read Source", *book.SourceURL))
	}

	return buttons
}

func isWebURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// truncateRunes cuts text so the result, marker included, is at most max
// characters.
func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-len(truncationMarker)]) + truncationMarker
}

// relativeAge phrases how long ago created was, relative to now.
func relativeAge(created, now time.Time) string {
	days := int(now.Sub(created).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := days / 365
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}
