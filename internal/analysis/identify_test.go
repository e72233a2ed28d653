package analysis

import (
	"reflect"
	"testing"

	"github.com/verte-zerg/credsift/internal/model"
)

func TestCurveThreshold(t *testing.T) {
	cases := []struct {
		standalone float64
		want       float64
		ok         bool
	}{
		{100, 0, false},
		{2999, 0, false},
		{3000, 1, true},
		{5000, 1, true},
		{10000, 10, true},
		{20000, 30, true},
		{24000, 65, true},
	}
	for _, tc := range cases {
		got, ok := curveThreshold(tc.standalone)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("curveThreshold(%v) = (%v, %v), want (%v, %v)", tc.standalone, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIdentifySelectsSuspiciousRatios(t *testing.T) {
	stats := map[string][]model.PrefixStat{
		"siteA": {
			{Prefix: "filler1", StandaloneCount: 4000, FollowingCount: 0},
			{Prefix: "human", StandaloneCount: 10000, FollowingCount: 50},
			{Prefix: "filler2", StandaloneCount: 10000, FollowingCount: 5},
		},
		"siteB": {
			{Prefix: "filler1", StandaloneCount: 24000, FollowingCount: 10},
			{Prefix: "rare", StandaloneCount: 100, FollowingCount: 0},
		},
	}

	got := Identify(stats)
	want := []string{"filler1", "filler2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Identify = %v, want %v", got, want)
	}
}

func TestSuspectsJSONRoundTrip(t *testing.T) {
	path := t.TempDir() + "/suspects.json"
	want := []string{"aaa", "bbb"}
	if err := WriteSuspects(path, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadSuspects(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip drifted: %v vs %v", got, want)
	}
}
