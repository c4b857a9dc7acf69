package error

// Typed constructors for the catalog. Each one panics with a
// *ConstructionError when a required field is missing; use New for a
// non-panicking variant.

func NewUnsupportedRemote(remote string, opts ...Option) *Error {
	return Must(UnsupportedRemote{Remote: remote}, opts...)
}

// NewOutputDuplication keeps stages in the given order; the slice is copied.
func NewOutputDuplication(output string, stages []string, opts ...Option) *Error {
	return Must(OutputDuplication{Output: output, Stages: stages}, opts...)
}

func NewWorkingDirectoryAsOutput(cwd, fname string, opts ...Option) *Error {
	return Must(WorkingDirectoryAsOutput{Cwd: cwd, Fname: fname}, opts...)
}

func NewCircularDependency(dependency string, opts ...Option) *Error {
	return Must(CircularDependency{Dependency: dependency}, opts...)
}

func NewArgumentDuplication(path string, opts ...Option) *Error {
	return Must(ArgumentDuplication{Path: path}, opts...)
}

func NewMoveNotDataSource(path string, opts ...Option) *Error {
	return Must(MoveNotDataSource{Path: path}, opts...)
}

// NewNotAProject uses DefaultProjectKind; build a NotAProject Detail directly
// for another project kind.
func NewNotAProject(root string, opts ...Option) *Error {
	return Must(NotAProject{Root: root}, opts...)
}

func NewParserError(opts ...Option) *Error {
	return Must(ParseFailure{}, opts...)
}
