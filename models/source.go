package models

// SourceKind is the runtime classification of a raw input.
type SourceKind int

const (
	SourceLiteral SourceKind = iota
	SourceFilePath
	SourceURL
)

func (k SourceKind) String() string {
	switch k {
	case SourceFilePath:
		return "file"
	case SourceURL:
		return "url"
	default:
		return "literal"
	}
}

// Format identifies how a local file is decoded.
type Format string

const (
	FormatNone     Format = ""
	FormatText     Format = "txt"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatDocument Format = "docx"
	FormatHTML     Format = "html"
)
