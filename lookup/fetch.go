package lookup

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/stoich/errors"
)

// Source is a lookup table made available as a local file.
// Remote sources live in a temp directory until Close is called.
type Source struct {
	Path     string
	Original string
	Remote   bool
	cleanup  func()
}

// Close releases any temporary download. Safe to call more than once.
func (s *Source) Close() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Resolve makes input available locally. Existing local paths are used as
// is. Anything else goes through go-getter detection, so URLs such as
// https://host/elements.csv or s3::https://bucket/keys.xlsx are fetched.
func Resolve(ctx context.Context, input string, logger *zap.SugaredLogger) (*Source, error) {
	if input == "" {
		return nil, errors.NewInvalidRequestError("lookup table source is empty")
	}

	if local, ok := localPath(input); ok {
		return &Source{Path: local, Original: input}, nil
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect source type of %s", input)
	}

	parsed, err := url.Parse(detected)
	if err == nil && parsed.Scheme == "file" {
		if _, statErr := os.Stat(parsed.Path); statErr != nil {
			return nil, errors.Wrap(errors.NewNotFoundError("lookup table %s", input), statErr.Error())
		}
		return &Source{Path: parsed.Path, Original: input}, nil
	}

	return fetch(ctx, input, detected, logger)
}

// localPath accepts plain paths that exist, expanding a leading ~/.
func localPath(input string) (string, bool) {
	if strings.Contains(input, "://") || strings.Contains(input, "::") {
		return "", false
	}
	p := input
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		p = filepath.Join(home, p[2:])
	}
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func fetch(ctx context.Context, input, detected string, logger *zap.SugaredLogger) (*Source, error) {
	tempDir, err := os.MkdirTemp("", "stoich-lookup-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	cleanup := func() { os.RemoveAll(tempDir) }

	dst := filepath.Join(tempDir, remoteFileName(detected))

	logger.Infow("Fetching lookup table",
		"source", input,
		"detected", detected,
		"destination", dst,
	)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		cleanup()
		return nil, errors.Wrapf(err, "failed to fetch %s", input)
	}

	return &Source{Path: dst, Original: input, Remote: true, cleanup: cleanup}, nil
}

// remoteFileName keeps the source's base name so the extension still
// selects the right table reader.
func remoteFileName(detected string) string {
	raw := detected
	if i := strings.Index(raw, "::"); i >= 0 {
		raw = raw[i+2:]
	}
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		if base := path.Base(u.Path); base != "/" && base != "." {
			return base
		}
	}
	return "table.csv"
}
