package distribution

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/verte-zerg/credsift/internal/model"
)

// linePattern matches one report line, e.g.
// Character: 'a' - Average: 12.5% - Range: [10.0%, 15.0%]
var linePattern = regexp.MustCompile(
	`^Character:\s*'(.)'\s*-\s*Average:\s*(\d+(?:\.\d+)?)%\s*-\s*Range:\s*\[(\d+(?:\.\d+)?)%,\s*(\d+(?:\.\d+)?)%\]$`,
)

// ParseReader reads a distribution report line by line. Blank lines and
// lines starting with # are skipped silently; any other line that does not
// match the report grammar is reported through diag and skipped. Percentages
// are stored divided by 100.
func ParseReader(r io.Reader, diag func(line string)) (*Distribution, error) {
	dist := New()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			if diag != nil {
				diag(line)
			}
			continue
		}
		average, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			if diag != nil {
				diag(line)
			}
			continue
		}
		minRange, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			if diag != nil {
				diag(line)
			}
			continue
		}
		maxRange, err := strconv.ParseFloat(match[4], 64)
		if err != nil {
			if diag != nil {
				diag(line)
			}
			continue
		}
		dist.Set(match[1], model.CharacterStat{
			Average:  average / 100,
			MinRange: minRange / 100,
			MaxRange: maxRange / 100,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dist, nil
}
