package types

// RasterBackend identifies the page rasterization tool.
type RasterBackend string

const (
	BackendMuPDF   RasterBackend = "mupdf"
	BackendPoppler RasterBackend = "poppler"
)

// DefaultDPI is the rasterization resolution used when none is given.
const DefaultDPI = 300

// DeckExtension is the canonical file extension of the output artifact.
const DeckExtension = ".pptx"

// CanvasConfig holds the slide size in inches. Width and height are set
// together or both left at zero for the default.
type CanvasConfig struct {
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

// ConversionConfig holds settings for the conversion pipeline.
type ConversionConfig struct {
	// Backend selects the rasterizer: mupdf or poppler.
	Backend RasterBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// DPI is the rasterization resolution (default 300).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	Canvas CanvasConfig `json:"canvas" yaml:"canvas" mapstructure:"canvas"`

	// WorkspaceRoot is the parent directory for workspaces; empty means
	// the OS temp directory.
	WorkspaceRoot string `json:"workspace_root" yaml:"workspace_root" mapstructure:"workspace_root"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	DB      string `json:"db" yaml:"db" mapstructure:"db"`

	// MaxResults is the default number of records listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}
