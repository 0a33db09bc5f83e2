// Package envfile hands exports between pipeline steps through a KEY=value file,
// the format of the GitHub Actions $GITHUB_ENV file.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/model"
)

// Write appends exports to the file at path as KEY=value lines in key order.
// The file is created if missing. Values containing a line break are rejected
// because the single line format cannot carry them.
func Write(path string, exports model.Exports) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open env file", goerr.V("path", path))
	}

	if err := Encode(f, exports); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write env file", goerr.V("path", path))
	}

	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close env file", goerr.V("path", path))
	}
	return nil
}

// Encode writes exports to w as KEY=value lines in key order
func Encode(w io.Writer, exports model.Exports) error {
	keys := exports.Keys()
	for _, k := range keys {
		v := exports[k]
		if strings.ContainsAny(v, "\r\n") {
			return goerr.New("export value contains a line break", goerr.V("key", k))
		}
	}

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, exports[k]); err != nil {
			return goerr.Wrap(err, "failed to write export", goerr.V("key", k))
		}
	}
	return nil
}

// Read loads the exports stored in the env file at path. Unrelated keys in the
// file are ignored; a later line overrides an earlier one with the same key.
func Read(path string) (model.Exports, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open env file", goerr.V("path", path))
	}
	defer f.Close()

	exports, err := Decode(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read env file", goerr.V("path", path))
	}
	return exports, nil
}

// Decode parses KEY=value lines. Export keys carry dashes, which dotenv parsers
// reject as variable names, so lines are split on the first "=" only. Values are
// kept verbatim. Multi-line KEY<<DELIMITER blocks written by other workflow
// steps are skipped.
func Decode(r io.Reader) (model.Exports, error) {
	var (
		lines     []string
		delimiter string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSuffix(scanner.Text(), "\r")

		if delimiter != "" {
			if raw == delimiter {
				delimiter = ""
			}
			continue
		}

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(raw, "=")
		if head, delim, isHeredoc := strings.Cut(raw, "<<"); isHeredoc && (!ok || len(head) < len(key)) {
			delimiter = strings.TrimSpace(delim)
			continue
		}
		if !ok {
			continue
		}

		key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
		lines = append(lines, key+"="+value)
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to scan env lines")
	}
	if delimiter != "" {
		return nil, goerr.New("unterminated multi-line value", goerr.V("delimiter", delimiter))
	}
	return model.ExportsFromEnviron(lines), nil
}
