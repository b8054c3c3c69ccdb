package errors

// error messages
const (
	// eh-frame
	EhFrameTruncated       = "eh_frame error: entry truncated before declared length (%v)"
	EhFrameBadCIEVersion   = "eh_frame error: cannot handle a CIE block version %d"
	EhFrameBadAugmentation = "eh_frame error: unsupported augmentation character %q"
	EhFrameUnknownCIE      = "eh_frame error: FDE refers to a CIE at offset %#x that doesn't exist"
	EhFrameMissingRAug     = "eh_frame error: CIE has no R-augmentation pointer format/application"
	EhFramePointerEncoding = "eh_frame error: unsupported pointer format/application pair (%v/%v)"
	EhFrameEntryOverrun    = "eh_frame error: entry consumed %d bytes but declared length is %d"

	// program loader
	ObjectFileError     = "program error: cannot open object file: %v"
	NoEhFrameSection    = "program error: no .eh_frame section"
	NoSectionForAddress = "program error: function at address %#x lies in no loaded section"
	SymbolTableError    = "program error: cannot read symbol table: %v"

	// function matcher
	StaticInitAmbiguous = "matcher error: static initializer filename %q is ambiguous in this program"

	// function comparator
	PointerSizeDiffers  = "compare error: primary is %d-bit but secondary is %d-bit"
	UnhandledSubOperand = "compare error: SUB ESP probe encountered an unsupported operand shape (%v)"
	DecodeError         = "compare error: cannot decode instruction at %#x: %v"

	// diff layout
	LayoutOpOutOfRange = "layout error: diff op %v references an index outside its instruction vector"

	// orchestrator
	LoadError    = "orchestrator error: %v"
	CompareError = "orchestrator error: comparing %q: %v"

	// cli
	UsageMessage     = "usage: %s <primary-binary> <secondary-binary>"
	InputFileMessage = "cli error: cannot read input file: %v"
	CLIError         = "%v"
)
