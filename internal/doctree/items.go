package doctree

// Kind identifies a content item variant.
type Kind int

// Content item kinds.
const (
	KindParagraph Kind = iota + 1
	KindList
	KindHeading
	KindKeyPoints
	KindEmail
	KindHookPoint
	KindExample
	KindEmphasis
	KindProspectTable
	KindImage
	KindFullPageImage
)

var kindNames = map[Kind]string{
	KindParagraph:     "paragraph",
	KindList:          "list",
	KindHeading:       "h4",
	KindKeyPoints:     "keyPoints",
	KindEmail:         "email",
	KindHookPoint:     "hookPoint",
	KindExample:       "example",
	KindEmphasis:      "emphasisTitle",
	KindProspectTable: "prospectTable",
	KindImage:         "image",
	KindFullPageImage: "fullPageImage",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Item is one classified unit of section content. The set of
// implementations is closed: only types in this package satisfy it.
type Item interface {
	Kind() Kind
	sealed()
}

// Paragraph is a run of prose lines joined by single spaces.
type Paragraph struct {
	Text string
}

// List is a bulleted or numbered list. Ordered is fixed by the marker of
// the first line.
type List struct {
	Ordered bool
	Items   []string
}

// Heading is an ALL-CAPS label line rendered at h4 level.
type Heading struct {
	Text string
}

// KeyPoints is a highlighted box whose interior is segmented recursively.
type KeyPoints struct {
	Header  string
	Content []Item
}

// Email is an email template with header fields and body lines.
type Email struct {
	Subject string
	From    string
	To      string
	Body    []string
}

// HookPoint is a short highlighted callout.
type HookPoint struct {
	Text string
}

// Example is an example or case-study box, segmented recursively.
type Example struct {
	Header  string
	Content []Item
}

// Emphasis is a standalone emphasized line.
type Emphasis struct {
	Text string
}

// ProspectTable is a run of structured prospect records.
type ProspectTable struct {
	Rows []ProspectRow
}

// ProspectRow is one prospect record. Number and Name are always set.
type ProspectRow struct {
	Number  string
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// Image is an inline image directive.
type Image struct {
	Path string
}

// FullPageImage is an image that occupies a whole printed page.
type FullPageImage struct {
	Path string
}

func (Paragraph) Kind() Kind     { return KindParagraph }
func (List) Kind() Kind          { return KindList }
func (Heading) Kind() Kind       { return KindHeading }
func (KeyPoints) Kind() Kind     { return KindKeyPoints }
func (Email) Kind() Kind         { return KindEmail }
func (HookPoint) Kind() Kind     { return KindHookPoint }
func (Example) Kind() Kind       { return KindExample }
func (Emphasis) Kind() Kind      { return KindEmphasis }
func (ProspectTable) Kind() Kind { return KindProspectTable }
func (Image) Kind() Kind         { return KindImage }
func (FullPageImage) Kind() Kind { return KindFullPageImage }

func (Paragraph) sealed()     {}
func (List) sealed()          {}
func (Heading) sealed()       {}
func (KeyPoints) sealed()     {}
func (Email) sealed()         {}
func (HookPoint) sealed()     {}
func (Example) sealed()       {}
func (Emphasis) sealed()      {}
func (ProspectTable) sealed() {}
func (Image) sealed()         {}
func (FullPageImage) sealed() {}
