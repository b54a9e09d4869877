package domain

// Message is the Slack Block Kit payload posted to the webhook. It is built
// fresh per run and consumed immediately by the notifier.
type Message struct {
	Blocks []Block `json:"blocks"`
}

// Block is one presentational unit of a Message.
type Block interface {
	BlockType() string
}

// TextObject is a Block Kit text composition object ("plain_text" or "mrkdwn").
type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// PlainText builds a plain_text object with emoji rendering enabled.
func PlainText(text string) TextObject {
	return TextObject{Type: "plain_text", Text: text, Emoji: true}
}

// Markdown builds an mrkdwn text object.
func Markdown(text string) TextObject {
	return TextObject{Type: "mrkdwn", Text: text}
}

// HeaderBlock renders a large title line.
type HeaderBlock struct {
	Type string     `json:"type"`
	Text TextObject `json:"text"`
}

func NewHeaderBlock(text string) HeaderBlock {
	return HeaderBlock{Type: "header", Text: PlainText(text)}
}

func (b HeaderBlock) BlockType() string { return b.Type }

// ImageAccessory is a thumbnail attached to a section block.
type ImageAccessory struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
}

// SectionBlock renders a body of mrkdwn text with an optional accessory.
type SectionBlock struct {
	Type      string          `json:"type"`
	Text      TextObject      `json:"text"`
	Accessory *ImageAccessory `json:"accessory,omitempty"`
}

func NewSectionBlock(text string) SectionBlock {
	return SectionBlock{Type: "section", Text: Markdown(text)}
}

func (b SectionBlock) BlockType() string { return b.Type }

// ContextBlock renders a line of small metadata elements.
type ContextBlock struct {
	Type     string       `json:"type"`
	Elements []TextObject `json:"elements"`
}

func NewContextBlock(elements []TextObject) ContextBlock {
	return ContextBlock{Type: "context", Elements: elements}
}

func (b ContextBlock) BlockType() string { return b.Type }

// DividerBlock renders a horizontal rule.
type DividerBlock struct {
	Type string `json:"type"`
}

func NewDividerBlock() DividerBlock {
	return DividerBlock{Type: "divider"}
}

func (b DividerBlock) BlockType() string { return b.Type }

// ButtonElement is a link button inside an actions block.
type ButtonElement struct {
	Type string     `json:"type"`
	Text TextObject `json:"text"`
	URL  string     `json:"url"`
}

func NewButtonElement(label, url string) ButtonElement {
	return ButtonElement{Type: "button", Text: PlainText(label), URL: url}
}

// ActionsBlock holds up to a handful of interactive elements.
type ActionsBlock struct {
	Type     string          `json:"type"`
	Elements []ButtonElement `json:"elements"`
}

func NewActionsBlock(elements []ButtonElement) ActionsBlock {
	return ActionsBlock{Type: "actions", Elements: elements}
}

func (b ActionsBlock) BlockType() string { return b.Type }
