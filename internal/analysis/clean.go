package analysis

import (
	"fmt"
	"io"

	"github.com/verte-zerg/credsift/internal/credfile"
	"github.com/verte-zerg/credsift/internal/model"
)

// CleanTree rewrites every credential file under root without records whose
// password is on the suspect list. Removed records are written to removed as
// username:password lines. Returns the kept and dropped record counts.
func CleanTree(root string, suspects []string, removed io.Writer, progress func(path string)) (int, int, error) {
	suspectSet := make(map[string]struct{}, len(suspects))
	for _, password := range suspects {
		suspectSet[password] = struct{}{}
	}

	kept, dropped := 0, 0
	err := credfile.Walk(root, func(path string) error {
		if progress != nil {
			progress(path)
		}
		creds, err := credfile.ReadCredentials(path)
		if err != nil {
			return err
		}

		remaining := make([]model.Credential, 0, len(creds))
		for _, cred := range creds {
			if _, suspicious := suspectSet[cred.Password]; suspicious {
				dropped++
				if removed != nil {
					if _, err := fmt.Fprintf(removed, "%s:%s\n", cred.Username, cred.Password); err != nil {
						return fmt.Errorf("failed to record removed credential: %w", err)
					}
				}
				continue
			}
			remaining = append(remaining, cred)
		}
		kept += len(remaining)

		if len(remaining) == len(creds) {
			// Nothing removed, leave the file untouched.
			return nil
		}
		return credfile.WriteCredentials(path, remaining)
	})
	if err != nil {
		return kept, dropped, fmt.Errorf("failed to clean corpus: %w", err)
	}
	return kept, dropped, nil
}
