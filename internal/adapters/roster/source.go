package roster

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/coffeetable/internal/domain"
	"github.com/bnema/coffeetable/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const commentPrefix = "#"

type Format string

const (
	FormatText Format = "text"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FileSource reads the participant roster from a file. The format follows
// the file extension: .toml, .yaml/.yml, anything else is plain text with
// one name per line.
type FileSource struct {
	path   string
	format Format
}

var _ ports.ParticipantSource = (*FileSource)(nil)

type documentSchema struct {
	Participants []string `toml:"participants" yaml:"participants"`
}

func NewFileSource(path string) (*FileSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("roster path is empty")
	}

	return &FileSource{path: path, format: FormatForPath(path)}, nil
}

func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) List(ctx context.Context) ([]domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRosterNotFound, s.path)
		}
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	names, err := Parse(data, s.format)
	if err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", s.path, err)
	}

	return domain.ParseParticipants(names), nil
}

// Parse decodes raw roster content. Text rosters skip blank lines and lines
// starting with '#'.
func Parse(data []byte, format Format) ([]string, error) {
	switch format {
	case FormatText:
		return parseText(data)
	case FormatTOML:
		var doc documentSchema
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode toml roster: %w", err)
		}
		return doc.Participants, nil
	case FormatYAML:
		var doc documentSchema
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml roster: %w", err)
		}
		return doc.Participants, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedRosterFormat, format)
	}
}

func parseText(data []byte) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan text roster: %w", err)
	}

	return names, nil
}
