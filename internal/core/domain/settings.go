package domain

import "time"

// DefaultDatasetPath is the dataset file looked up when none is configured.
const DefaultDatasetPath = "1999-2023年数字化转型指数汇总.csv"

// DefaultCacheTTL bounds how long a loaded dataset is reused.
const DefaultCacheTTL = time.Hour

// DefaultEncodings is the ordered list of text encodings tried for CSV
// sources. The first encoding that decodes and parses the whole file wins.
var DefaultEncodings = []string{"utf-8-sig", "gbk", "gb2312", "latin-1"}

// Settings holds the application configuration.
type Settings struct {
	Dataset DatasetSettings
	Loader  LoaderSettings
	Cache   CacheSettings
}

// DatasetSettings locates the dataset file.
type DatasetSettings struct {
	// Path is the dataset file. Relative paths resolve against the
	// working directory.
	Path string

	// Sheet names the worksheet read from spreadsheet sources.
	// Empty selects the first sheet.
	Sheet string
}

// LoaderSettings configures how source files are decoded.
type LoaderSettings struct {
	// Encodings is the ordered candidate list for CSV decoding.
	Encodings []string
}

// CacheSettings configures the loaded dataset cache.
type CacheSettings struct {
	// TTL is how long a loaded dataset stays valid.
	TTL time.Duration
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	encodings := make([]string, len(DefaultEncodings))
	copy(encodings, DefaultEncodings)
	return &Settings{
		Dataset: DatasetSettings{Path: DefaultDatasetPath},
		Loader:  LoaderSettings{Encodings: encodings},
		Cache:   CacheSettings{TTL: DefaultCacheTTL},
	}
}
