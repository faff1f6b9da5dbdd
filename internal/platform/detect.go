package platform

import "github.com/thoreinstein/switchboard/internal/paths"

// InstallStatus indicates the installation state of an application.
type InstallStatus string

const (
	// StatusInstalled indicates the application's config directory exists.
	StatusInstalled InstallStatus = "installed"

	// StatusNotInstalled indicates the config directory does not exist.
	StatusNotInstalled InstallStatus = "not_installed"
)

// DetectionResult describes one application's live-file locations.
type DetectionResult struct {
	App paths.App

	// ConfigDir is always set, even when the directory does not exist.
	ConfigDir string

	// LiveFiles lists the live file paths by role, whether or not they exist.
	LiveFiles map[Role]string

	PromptPath string
	Status     InstallStatus
}

// specLister is implemented by adapters that embed Base.
type specLister interface {
	Specs() []FileSpec
}

// Detect reports whether a's application is initialized and where its live
// files live.
func Detect(a Adapter) DetectionResult {
	status := StatusNotInstalled
	if a.Initialized() {
		status = StatusInstalled
	}

	files := make(map[Role]string)
	if sl, ok := a.(specLister); ok {
		for _, s := range sl.Specs() {
			files[s.Role] = s.Path
		}
	}

	return DetectionResult{
		App:        a.App(),
		ConfigDir:  a.ConfigDir(),
		LiveFiles:  files,
		PromptPath: a.PromptPath(),
		Status:     status,
	}
}

// DetectAll returns detection results for every registered adapter.
func DetectAll(r *Registry) []DetectionResult {
	adapters := r.All()
	results := make([]DetectionResult, 0, len(adapters))
	for _, a := range adapters {
		results = append(results, Detect(a))
	}
	return results
}
