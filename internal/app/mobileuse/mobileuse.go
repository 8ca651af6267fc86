package mobileuse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/lybic/lybic-sdk-go/internal/api"
	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

const apkDownloadDir = "/sdcard/Download"

// SandboxManager is the sandbox API the mobile tools run on.
type SandboxManager interface {
	Get(ctx context.Context, sandboxID string) (*model.SandboxDetails, error)
	ExecuteProcess(ctx context.Context, sandboxID string, req model.ProcessRequest) (*model.ProcessResult, error)
}

// ServiceConfig is the configuration for the mobile use service.
type ServiceConfig struct {
	Requester api.Requester
	Sandboxes SandboxManager
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Requester == nil {
		return fmt.Errorf("requester is required")
	}
	if c.Sandboxes == nil {
		return fmt.Errorf("sandbox manager is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.MobileUse"})
	return nil
}

// Service has the mobile use tools.
type Service struct {
	req       api.Requester
	sandboxes SandboxManager
	logger    log.Logger
}

// NewService creates a new mobile use service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{req: cfg.Requester, sandboxes: cfg.Sandboxes, logger: cfg.Logger}, nil
}

// ParseLLMOutput parses the text output of an LLM into mobile use actions.
func (s *Service) ParseLLMOutput(ctx context.Context, pm model.ParseModel, text string) (*model.ParsedActions, error) {
	if err := pm.Validate(); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	p := api.Path("/api/mobile-use/parse/%s", string(pm))
	if err := s.req.Do(ctx, http.MethodPost, p, model.ParseTextRequest{TextContent: text}, &raw); err != nil {
		return nil, fmt.Errorf("could not parse llm output: %w", err)
	}
	s.logger.Debugf("Parse model output response: %s", raw)

	return model.DecodeParsedActions(model.ActionUnionMobileUse, raw)
}

// SetGPSLocation sets the injected GPS location of an Android sandbox.
func (s *Service) SetGPSLocation(ctx context.Context, sandboxID string, loc model.GPSLocation) (*model.ProcessResult, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireAndroid(ctx, sandboxID, "set gps location"); err != nil {
		return nil, err
	}

	return s.sandboxes.ExecuteProcess(ctx, sandboxID, model.ProcessRequest{
		Executable: "settings",
		Args:       []string{"put", "global", "gps_inject_info", fmt.Sprintf("%.6f,%.6f", loc.Latitude, loc.Longitude)},
	})
}

// InstallAPK installs APKs on an Android sandbox. The installation runs in
// the background on the device, the result of each install is not reported.
func (s *Service) InstallAPK(ctx context.Context, sandboxID string, sources []model.APKSource) error {
	if len(sources) == 0 {
		return fmt.Errorf("at least one apk source is required: %w", model.ErrNotValid)
	}
	for i, src := range sources {
		if err := src.Validate(); err != nil {
			return fmt.Errorf("apk source %d: %w", i, err)
		}
	}
	if err := s.requireAndroid(ctx, sandboxID, "install apk"); err != nil {
		return err
	}

	script := InstallScript(sources)
	_, err := s.sandboxes.ExecuteProcess(ctx, sandboxID, model.ProcessRequest{
		Executable: "sh",
		Args:       []string{"-c", "nohup sh -c " + shellQuote(script) + " >/dev/null 2>&1 &"},
	})
	if err != nil {
		return fmt.Errorf("could not start apk installation: %w", err)
	}

	s.logger.Infof("APK installation of %d sources started on sandbox %s", len(sources), sandboxID)
	return nil
}

func (s *Service) requireAndroid(ctx context.Context, sandboxID, op string) error {
	details, err := s.sandboxes.Get(ctx, sandboxID)
	if err != nil {
		return err
	}
	if details.Sandbox.Shape == nil || !details.Sandbox.Shape.OS.IsAndroid() {
		return fmt.Errorf("%s is only supported on Android sandboxes: %w", op, model.ErrUnsupportedOperation)
	}
	return nil
}

// InstallScript returns the device shell script that downloads the remote
// APKs, installs every APK and removes the downloaded files.
func InstallScript(sources []model.APKSource) string {
	lines := []string{"#!/system/bin/sh"}

	var apkPaths, downloaded []string
	for _, src := range sources {
		if !src.IsRemote() {
			continue
		}
		dest := apkDownloadDir + "/" + apkFileName(src.URL)
		downloaded = append(downloaded, dest)
		apkPaths = append(apkPaths, dest)

		cmd := fmt.Sprintf("curl -L -o %s %s", shellQuote(dest), shellQuote(src.URL))
		for _, k := range sortedKeys(src.Headers) {
			cmd += " -H " + shellQuote(k+": "+src.Headers[k])
		}
		lines = append(lines, cmd)
	}
	for _, src := range sources {
		if !src.IsRemote() {
			apkPaths = append(apkPaths, src.Path)
		}
	}

	for _, p := range apkPaths {
		lines = append(lines, "pm install -r "+shellQuote(p))
	}
	for _, p := range downloaded {
		lines = append(lines, "rm -f "+shellQuote(p))
	}

	return strings.Join(lines, "\n")
}

func apkFileName(url string) string {
	name := path.Base(strings.SplitN(url, "?", 2)[0])
	if !strings.HasSuffix(name, ".apk") {
		name += ".apk"
	}
	return name
}

// shellQuote quotes s as a single POSIX shell word.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
