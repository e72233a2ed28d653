// Package credfile reads, writes, and sorts credential files.
//
// Credential files hold one username:password record per line. Their content
// is frequently not valid UTF-8, so all reads and writes go through the
// ISO-8859-1 codec: every byte value decodes to a codepoint and encodes back
// to the same byte, so decoding never fails and rewriting preserves the
// original bytes.
package credfile

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/verte-zerg/credsift/internal/model"
)

// Suffix selects the credential files inside a corpus tree.
const Suffix = "_passwords.txt"

// scanBufferSize bounds a single credential line.
const scanBufferSize = 1 * 1024 * 1024

// Walk calls fn for every file under root whose name ends with Suffix.
// Traversal errors abort the walk.
func Walk(root string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Suffix) {
			return nil
		}
		return fn(path)
	})
}

// ReadCredentials loads all records from a credential file. Lines without a
// separator are dropped; lines with one are split on the first occurrence
// only, so passwords may themselves contain the separator.
func ReadCredentials(path string) ([]model.Credential, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only credential file.
			_ = cerr
		}
	}()

	var creds []model.Credential
	scanner := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(file))
	scanner.Buffer(make([]byte, 0), scanBufferSize)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ":", 2)
		if len(parts) < 2 {
			continue
		}
		creds = append(creds, model.Credential{Username: parts[0], Password: parts[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return creds, nil
}

// WriteCredentials rewrites a credential file with the given records, one
// username:password line each. The records are written to a temp file in the
// same directory and renamed over the original, so a failed write leaves the
// original untouched.
func WriteCredentials(path string, creds []model.Credential) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(charmap.ISO8859_1.NewEncoder().Writer(tmpFile))
	for _, cred := range creds {
		if _, err := fmt.Fprintf(writer, "%s:%s\n", cred.Username, cred.Password); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
