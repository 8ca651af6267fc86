package model

import "fmt"

// FileLocationType is the discriminator of a FileLocation.
type FileLocationType string

const (
	FileLocationSandbox FileLocationType = "sandboxFileLocation"
	FileLocationHTTPGet FileLocationType = "httpGetLocation"
	FileLocationHTTPPut FileLocationType = "httpPutLocation"
)

// FileLocation is a source or destination of a file copy: a path inside the
// sandbox or an HTTP URL.
type FileLocation struct {
	Type    FileLocationType  `json:"type"`
	Path    string            `json:"path,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// SandboxFile returns a location for a file inside the sandbox.
func SandboxFile(path string) FileLocation {
	return FileLocation{Type: FileLocationSandbox, Path: path}
}

// HTTPGetFile returns a location the sandbox will download the file from.
func HTTPGetFile(url string, headers map[string]string) FileLocation {
	return FileLocation{Type: FileLocationHTTPGet, URL: url, Headers: headers}
}

// HTTPPutFile returns a location the sandbox will upload the file to.
func HTTPPutFile(url string, headers map[string]string) FileLocation {
	return FileLocation{Type: FileLocationHTTPPut, URL: url, Headers: headers}
}

// Validate checks the location is valid.
func (l FileLocation) Validate() error {
	switch l.Type {
	case FileLocationSandbox:
		if l.Path == "" {
			return fmt.Errorf("sandbox file location path is required: %w", ErrNotValid)
		}
	case FileLocationHTTPGet, FileLocationHTTPPut:
		if l.URL == "" {
			return fmt.Errorf("%s url is required: %w", l.Type, ErrNotValid)
		}
	default:
		return fmt.Errorf("unknown file location type %q: %w", l.Type, ErrNotValid)
	}
	return nil
}

// FileCopyItem copies a file from Src to Dest.
type FileCopyItem struct {
	ID   string       `json:"id,omitempty"`
	Src  FileLocation `json:"src"`
	Dest FileLocation `json:"dest"`
}

// FileCopyRequest is the request to copy files in or out of a sandbox.
type FileCopyRequest struct {
	Files []FileCopyItem `json:"files"`
}

// Validate checks the request is valid, one side of each copy must be the sandbox.
func (r FileCopyRequest) Validate() error {
	if len(r.Files) == 0 {
		return fmt.Errorf("at least one file is required: %w", ErrNotValid)
	}
	for i, f := range r.Files {
		if err := f.Src.Validate(); err != nil {
			return fmt.Errorf("file %d src: %w", i, err)
		}
		if err := f.Dest.Validate(); err != nil {
			return fmt.Errorf("file %d dest: %w", i, err)
		}
		if f.Src.Type == FileLocationHTTPPut {
			return fmt.Errorf("file %d src can't be an upload location: %w", i, ErrNotValid)
		}
		if f.Dest.Type == FileLocationHTTPGet {
			return fmt.Errorf("file %d dest can't be a download location: %w", i, ErrNotValid)
		}
	}
	return nil
}

// FileCopyResult is the result of a single file copy.
type FileCopyResult struct {
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FileCopyResponse has the results of a file copy request.
type FileCopyResponse struct {
	Results []FileCopyResult `json:"results"`
}
