package ingestion

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poiesic/clingraph/core"
)

// ParseConcepts reads a tab-separated concept file: one concept per line,
// `id<TAB>name`. Blank lines and lines starting with '#' are skipped.
func ParseConcepts(r io.Reader) ([]*core.Concept, error) {
	var concepts []*core.Concept
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("%w %d: want id<TAB>name, got %d fields", ErrMalformedLine, lineNo, len(fields))
		}
		id, err := parseID(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		name := strings.TrimSpace(fields[1])
		if name == "" {
			return fmt.Errorf("%w %d: empty concept name", ErrMalformedLine, lineNo)
		}
		concepts = append(concepts, &core.Concept{Id: id, Name: name})
		return nil
	})
	return concepts, err
}

// ParseRelationships reads a tab-separated relationship file:
// `from<TAB>type<TAB>to` with an optional fourth relationship-group field.
func ParseRelationships(r io.Reader) ([]*core.Relationship, error) {
	var relationships []*core.Relationship
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) < 3 {
			return fmt.Errorf("%w %d: want from<TAB>type<TAB>to, got %d fields", ErrMalformedLine, lineNo, len(fields))
		}
		from, err := parseID(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		typ, err := parseID(fields[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		to, err := parseID(fields[2])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		rel := &core.Relationship{From: from, To: to, Type: typ}
		if len(fields) > 3 && fields[3] != "" {
			group, err := strconv.ParseInt(fields[3], 10, 32)
			if err != nil {
				return fmt.Errorf("line %d: invalid relationship group %q: %w", lineNo, fields[3], err)
			}
			rel.Group = int32(group)
		}
		relationships = append(relationships, rel)
		return nil
	})
	return relationships, err
}

// ParseSemanticTypes reads a tab-separated semantic-type file:
// `conceptId<TAB>tag`, one tag per line. A concept may appear on multiple
// lines; tags accumulate in file order.
func ParseSemanticTypes(r io.Reader) (map[core.ID][]string, error) {
	tags := make(map[core.ID][]string)
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("%w %d: want id<TAB>tag, got %d fields", ErrMalformedLine, lineNo, len(fields))
		}
		id, err := parseID(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		tag := strings.TrimSpace(fields[1])
		if tag == "" {
			return fmt.Errorf("%w %d: empty semantic type", ErrMalformedLine, lineNo)
		}
		tags[id] = append(tags[id], tag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func scanLines(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNo, strings.Split(line, "\t")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseID(field string) (core.ID, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", field, err)
	}
	return core.ID(id), nil
}
