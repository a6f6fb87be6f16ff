// Package fs reads URL lists and names output files on the local filesystem.
package fs

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/elephantlog"
)

// Stdin is the input name that selects interactive entry.
const Stdin = "-"

// DefaultOutputDir is where timestamped CSV files are written.
const DefaultOutputDir = "output"

// ReadURLs reads newline-delimited URLs from r. Blank lines and lines
// beginning with "#" are skipped. In interactive mode reading stops at
// the first blank line as well as at EOF.
func ReadURLs(r io.Reader, interactive bool) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if interactive {
				break
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, elephantlog.Errorf(elephantlog.EINVALID, "read URLs: %v", err)
	}
	return urls, nil
}

// LoadURLs reads the URL list named by input. Stdin reads interactively
// from stdin; anything else is a file path.
func LoadURLs(input string, stdin io.Reader) ([]string, error) {
	if input == Stdin {
		return ReadURLs(stdin, true)
	}

	f, err := os.Open(input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, elephantlog.Errorf(elephantlog.ENOTFOUND, "input file not found: %s", input)
		}
		return nil, elephantlog.Errorf(elephantlog.EINVALID, "open input: %v", err)
	}
	defer f.Close()
	return ReadURLs(f, false)
}

// OutputPath returns dir/elephant_incidents_YYYYMMDD_HHMMSS.csv for t.
// An empty dir means DefaultOutputDir.
func OutputPath(dir string, t time.Time) string {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return filepath.Join(dir, "elephant_incidents_"+t.Format("20060102_150405")+".csv")
}
