package diag

import "fmt"

// Code identifies a diagnostic condition.
type Code uint16

const (
	UnknownCode Code = 0

	// Parsing the host tree
	ParseFailed         Code = 1001
	ParseNoDeclarations Code = 1002
	ParseSyntaxErrors   Code = 1003

	// Generation pipeline
	GenSkippedKind  Code = 2001
	GenKeptExisting Code = 2002
	GenNothingToDo  Code = 2003

	// Tree editing and write transactions
	EditReformatSkipped   Code = 3001
	EditFileNotValid      Code = 3002
	EditFileReadOnly      Code = 3003
	EditFileStale         Code = 3004
	EditTransactionFailed Code = 3005
	EditWriteFailed       Code = 3006

	// Configuration
	CfgInvalid Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown condition",

	ParseFailed:         "failed to parse source file",
	ParseNoDeclarations: "no documentable declarations found",
	ParseSyntaxErrors:   "source has syntax errors",

	GenSkippedKind:  "declaration kind has no generator",
	GenKeptExisting: "existing comment kept",
	GenNothingToDo:  "nothing to generate",

	EditReformatSkipped:   "reformat skipped",
	EditFileNotValid:      "file cannot be used to generate javadocs",
	EditFileReadOnly:      "file is read-only",
	EditFileStale:         "file changed on disk since it was loaded",
	EditTransactionFailed: "write transaction failed",
	EditWriteFailed:       "failed to write file",

	CfgInvalid: "invalid configuration",
}

// ID renders a stable short identifier such as EDT3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EDT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	default:
		return fmt.Sprintf("UNK%04d", ic)
	}
}

// Title returns the human-readable description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
