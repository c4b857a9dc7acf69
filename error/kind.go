package error

// Kind identifies one member of the closed failure catalog.
type Kind uint8

const (
	// KindUnknown is the zero value; no constructor produces it.
	KindUnknown Kind = iota
	KindUnsupportedRemote
	KindOutputDuplication
	KindWorkingDirectoryAsOutput
	KindCircularDependency
	KindArgumentDuplication
	KindMoveNotDataSource
	KindNotAProject
	KindParser
)

type kindInfo struct {
	name string
	code string
	key  string
}

var kinds = [...]kindInfo{
	KindUnknown:                  {"unknown", "unknown", "unknown"},
	KindUnsupportedRemote:        {"unsupported_remote", "remote.unsupported", "remote"},
	KindOutputDuplication:        {"output_duplication", "graph.output_duplication", "graph"},
	KindWorkingDirectoryAsOutput: {"working_directory_as_output", "graph.cwd_as_output", "graph"},
	KindCircularDependency:       {"circular_dependency", "graph.circular_dependency", "graph"},
	KindArgumentDuplication:      {"argument_duplication", "graph.argument_duplication", "graph"},
	KindMoveNotDataSource:        {"move_not_data_source", "graph.move_not_data_source", "graph"},
	KindNotAProject:              {"not_a_project", "project.not_found", "project"},
	KindParser:                   {"parser", "parser.failed", "parser"},
}

func (k Kind) info() kindInfo {
	if int(k) >= len(kinds) {
		return kinds[KindUnknown]
	}
	return kinds[k]
}

func (k Kind) String() string { return k.info().name }

// Code returns the stable, machine-facing code (e.g. "graph.output_duplication").
func (k Kind) Code() string { return k.info().code }

// Key returns the category the kind belongs to ("remote", "graph", "project", "parser").
func (k Kind) Key() string { return k.info().key }

// Kinds lists every catalog kind in declaration order, excluding KindUnknown.
func Kinds() []Kind {
	return []Kind{
		KindUnsupportedRemote,
		KindOutputDuplication,
		KindWorkingDirectoryAsOutput,
		KindCircularDependency,
		KindArgumentDuplication,
		KindMoveNotDataSource,
		KindNotAProject,
		KindParser,
	}
}
