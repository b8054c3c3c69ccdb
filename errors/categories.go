package errors

// list of error numbers
const (
	// EH-Frame Parser
	MalformedEhFrame Errno = iota
	UnsupportedAugmentation
	UnsupportedPointerEncoding
	UnknownCIEReference

	// Program Loader
	MissingSection
	MalformedObjectFile
	UnmappedFunctionRange

	// Function Matcher
	AmbiguousStaticInit

	// Function Comparator
	PointerSizeMismatch
	UnhandledInstructionShape

	// Diff Layout
	LayoutIndexOutOfRange

	// Orchestrator
	LoadFailure
	CompareFailure

	// CLI
	UsageError
	InputFileError
)

// Unknown is the category of an error this package didn't curate, or of a
// curated error whose message was never given a category below.
const Unknown Errno = -1

// Errno identifies a category of curated error. It exists so that call sites
// can switch on a stable value rather than matching against a message
// string directly.
type Errno int

// messageErrno maps each curated message template to the category a
// caller can switch on, the way the CPU and memory error messages in this
// codebase's ancestor were matched back to an Errno.
var messageErrno = map[string]Errno{
	EhFrameTruncated:       MalformedEhFrame,
	EhFrameBadCIEVersion:   MalformedEhFrame,
	EhFrameBadAugmentation: UnsupportedAugmentation,
	EhFrameUnknownCIE:      UnknownCIEReference,
	EhFrameMissingRAug:     UnsupportedPointerEncoding,
	EhFramePointerEncoding: UnsupportedPointerEncoding,
	EhFrameEntryOverrun:    MalformedEhFrame,

	ObjectFileError:     MalformedObjectFile,
	NoEhFrameSection:    MissingSection,
	NoSectionForAddress: UnmappedFunctionRange,
	SymbolTableError:    MalformedObjectFile,

	StaticInitAmbiguous: AmbiguousStaticInit,

	PointerSizeDiffers:  PointerSizeMismatch,
	UnhandledSubOperand: UnhandledInstructionShape,
	DecodeError:         UnhandledInstructionShape,

	LayoutOpOutOfRange: LayoutIndexOutOfRange,

	LoadError:    LoadFailure,
	CompareError: CompareFailure,

	UsageMessage:     UsageError,
	CLIError:         InputFileError,
	InputFileMessage: InputFileError,
}

// categoryFor returns the Errno a curated message belongs to, or Unknown
// if the message was never catalogued above.
func categoryFor(message string) Errno {
	if c, ok := messageErrno[message]; ok {
		return c
	}
	return Unknown
}

// Category returns the Errno category of err. It returns Unknown for a nil
// error, a plain (non-curated) error, or a curated error whose message has
// no category.
func Category(err error) Errno {
	if er, ok := err.(curated); ok {
		return er.errno
	}
	return Unknown
}
