package credfile

import (
	"fmt"
	"sort"
)

// SortFile rewrites one credential file with its records ordered by
// password. The sort is stable, so records sharing a password keep their
// original relative order.
func SortFile(path string) error {
	creds, err := ReadCredentials(path)
	if err != nil {
		return err
	}
	sort.SliceStable(creds, func(i, j int) bool {
		return creds[i].Password < creds[j].Password
	})
	return WriteCredentials(path, creds)
}

// SortTree sorts every qualifying credential file under root, reporting each
// file through progress. Returns the number of files rewritten.
func SortTree(root string, progress func(path string)) (int, error) {
	files := 0
	err := Walk(root, func(path string) error {
		if progress != nil {
			progress(path)
		}
		if err := SortFile(path); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to sort credential files: %w", err)
	}
	return files, nil
}
