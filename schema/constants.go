package schema

// Custom string types for type safety.
type (
	// EntryKind is the kind of a file tree entry.
	EntryKind string

	// Level is the qualitative label derived from a score band.
	Level string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All tree entry kinds.
const (
	FileEntry      EntryKind = "file"
	DirectoryEntry EntryKind = "directory"
)

// All levels, lowest band first.
const (
	BeginnerLevel     Level = "Beginner"
	JuniorLevel       Level = "Junior"
	IntermediateLevel Level = "Intermediate"
	ExpertLevel       Level = "Expert"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllLevels lists every level in ascending order.
var AllLevels = []Level{BeginnerLevel, JuniorLevel, IntermediateLevel, ExpertLevel}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
