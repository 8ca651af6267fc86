package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

func TestRootCommandClientConfig(t *testing.T) {
	t.Setenv("LYBICTRACE", "trace-from-env")

	profile := model.Profile{
		OrgID:       "org-profile",
		APIKey:      "key-profile",
		Endpoint:    "https://profile.lybic.test",
		Timeout:     20 * time.Second,
		Headers:     map[string]string{"X-Team": "agents", "X-Trace": "profile"},
		JournalPath: "/profile/journal.db",
	}

	tests := map[string]struct {
		root      RootCommand
		profile   model.Profile
		expConfig lybic.Config
		expErr    bool
	}{
		"Profile values should be used when the flags are unset.": {
			root:    RootCommand{DataDir: "/data"},
			profile: profile,
			expConfig: lybic.Config{
				OrgID:        "org-profile",
				APIKey:       "key-profile",
				Endpoint:     "https://profile.lybic.test",
				Timeout:      20 * time.Second,
				ExtraHeaders: map[string]string{"X-Team": "agents", "X-Trace": "profile"},
				JournalPath:  "/profile/journal.db",
			},
		},
		"Flags should override the profile values.": {
			root: RootCommand{
				DataDir:     "/data",
				OrgID:       "org-flag",
				APIKey:      "key-flag",
				Endpoint:    "https://flag.lybic.test",
				Timeout:     5 * time.Second,
				Headers:     []string{"x-trace=flag", "LYBICTRACE"},
				JournalPath: "/flag/journal.db",
			},
			profile: profile,
			expConfig: lybic.Config{
				OrgID:    "org-flag",
				APIKey:   "key-flag",
				Endpoint: "https://flag.lybic.test",
				Timeout:  5 * time.Second,
				ExtraHeaders: map[string]string{
					"X-Team":     "agents",
					"X-Trace":    "flag",
					"Lybictrace": "trace-from-env",
				},
				JournalPath: "/flag/journal.db",
			},
		},
		"Without journal path the data dir journal should be used.": {
			root: RootCommand{DataDir: "/data", OrgID: "org-flag"},
			expConfig: lybic.Config{
				OrgID:        "org-flag",
				ExtraHeaders: map[string]string{},
				JournalPath:  filepath.Join("/data", "journal.db"),
			},
		},
		"Disabling the journal should leave the journal path empty.": {
			root:    RootCommand{DataDir: "/data", NoJournal: true},
			profile: profile,
			expConfig: lybic.Config{
				OrgID:        "org-profile",
				APIKey:       "key-profile",
				Endpoint:     "https://profile.lybic.test",
				Timeout:      20 * time.Second,
				ExtraHeaders: map[string]string{"X-Team": "agents", "X-Trace": "profile"},
			},
		},
		"A missing org ID should fail.": {
			root:   RootCommand{DataDir: "/data"},
			expErr: true,
		},
		"An invalid header should fail.": {
			root:   RootCommand{DataDir: "/data", OrgID: "org", Headers: []string{"bad key=1"}},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			test.root.Logger = log.Noop
			gotConfig, err := test.root.clientConfig(test.profile)

			if test.expErr {
				assert.Error(err)
				return
			}
			require.NoError(err)

			gotConfig.Logger = nil
			assert.Equal(test.expConfig, gotConfig)
		})
	}
}

func TestRootCommandLoadProfile(t *testing.T) {
	dir := t.TempDir()
	profileYAML := `
org_id: org-1
api_key: key-1
timeout: 30s
headers:
  X-Team: agents
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(profileYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("timeout: soon"), 0o600))

	tests := map[string]struct {
		root       RootCommand
		expProfile model.Profile
		expErr     bool
	}{
		"The data dir profile should be loaded.": {
			root: RootCommand{DataDir: dir},
			expProfile: model.Profile{
				OrgID:   "org-1",
				APIKey:  "key-1",
				Timeout: 30 * time.Second,
				Headers: map[string]string{"X-Team": "agents"},
			},
		},
		"A missing default profile should return an empty profile.": {
			root:       RootCommand{DataDir: filepath.Join(dir, "missing")},
			expProfile: model.Profile{},
		},
		"A missing explicit profile should fail.": {
			root:   RootCommand{DataDir: dir, ProfilePath: filepath.Join(dir, "other.yaml")},
			expErr: true,
		},
		"An invalid profile should fail.": {
			root:   RootCommand{DataDir: dir, ProfilePath: filepath.Join(dir, "bad.yaml")},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			test.root.Logger = log.Noop
			gotProfile, err := test.root.loadProfile(context.TODO())

			if test.expErr {
				assert.Error(err)
				return
			}
			require.NoError(err)
			assert.Equal(test.expProfile, gotProfile)
		})
	}
}

func TestParseLocation(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer x"}

	tests := map[string]struct {
		arg         string
		source      bool
		headers     map[string]string
		expLocation lybic.FileLocation
		expErr      bool
	}{
		"A sandbox path should be a sandbox location.": {
			arg:         "sbx:/home/agent/report.pdf",
			expLocation: lybic.SandboxFile("/home/agent/report.pdf"),
		},
		"An HTTP source should be downloaded by the sandbox.": {
			arg:         "https://files.example.com/in.txt",
			source:      true,
			headers:     headers,
			expLocation: lybic.HTTPGetFile("https://files.example.com/in.txt", headers),
		},
		"An HTTP destination should be uploaded by the sandbox.": {
			arg:         "http://files.example.com/out.txt",
			expLocation: lybic.HTTPPutFile("http://files.example.com/out.txt", nil),
		},
		"An empty sandbox path should fail.": {
			arg:    "sbx:",
			expErr: true,
		},
		"A local path should fail.": {
			arg:    "/tmp/file.txt",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			gotLocation, err := parseLocation(test.arg, test.source, test.headers)

			if test.expErr {
				assert.ErrorIs(err, lybic.ErrNotValid)
				return
			}
			require.NoError(err)
			assert.Equal(test.expLocation, gotLocation)
		})
	}
}

func TestScreenshotFileName(t *testing.T) {
	tests := map[string]struct {
		url         string
		contentType string
		expName     string
	}{
		"The URL file name should be used when it has an extension.": {
			url:     "https://cdn.lybic.test/shots/abc.webp?sig=1",
			expName: "abc.webp",
		},
		"Without URL extension and content type PNG should be used.": {
			url:     "https://cdn.lybic.test/shots/abc",
			expName: "SBX-1.png",
		},
		"An invalid content type should fall back to PNG.": {
			url:         "https://cdn.lybic.test/",
			contentType: ";;;",
			expName:     "SBX-1.png",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expName, screenshotFileName("SBX-1", test.url, test.contentType))
		})
	}
}

type fakeShellStream struct {
	events []lybic.StreamEvent
}

func (f *fakeShellStream) Recv() (lybic.StreamEvent, error) {
	if len(f.events) == 0 {
		return lybic.StreamEvent{}, io.EOF
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func TestCopyShellStream(t *testing.T) {
	tests := map[string]struct {
		events    []lybic.StreamEvent
		expStdout string
		expStderr string
		expErr    bool
	}{
		"Output should be split between stdout and stderr.": {
			events: []lybic.StreamEvent{
				{Type: lybic.StreamEventStdout, Data: "hello "},
				{Type: lybic.StreamEventWaiting},
				{Type: lybic.StreamEventStderr, Data: "warn"},
				{Type: lybic.StreamEventStdout, Data: "world"},
				{Type: lybic.StreamEventEnd},
				{Type: lybic.StreamEventStdout, Data: "ignored"},
			},
			expStdout: "hello world",
			expStderr: "warn",
		},
		"A closed stream should end without error.": {
			events:    []lybic.StreamEvent{{Type: lybic.StreamEventStdout, Data: "partial"}},
			expStdout: "partial",
		},
		"A timeout should fail.": {
			events: []lybic.StreamEvent{
				{Type: lybic.StreamEventStdout, Data: "slow"},
				{Type: lybic.StreamEventTimeout},
			},
			expStdout: "slow",
			expErr:    true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			var stdout, stderr bytes.Buffer
			err := copyShellStream(&fakeShellStream{events: test.events}, &stdout, &stderr)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
			assert.Equal(test.expStdout, stdout.String())
			assert.Equal(test.expStderr, stderr.String())
		})
	}
}

func TestReadInput(t *testing.T) {
	got, err := readInput("-", strings.NewReader(`{"type":"screenshot"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"screenshot"}`, string(got))

	got, err = readInput(`{"type":"wait","duration":10}`, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"wait","duration":10}`, string(got))
}

func TestAPKSources(t *testing.T) {
	got := apkSources([]string{"/sdcard/app.apk", "https://apps.example.com/app.apk"})

	assert.Equal(t, []lybic.APKSource{
		lybic.LocalAPK("/sdcard/app.apk"),
		lybic.RemoteAPK("https://apps.example.com/app.apk", nil),
	}, got)
}
