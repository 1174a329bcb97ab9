package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"maps": map[string]any{
			"apiKey":  "",
			"baseUrl": "",
		},
		"inventory": map[string]any{
			"headerScanRows": 20,
		},
		"search": map[string]any{
			"pageDelay": "300ms",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "MAPS_APIKEY", want: "maps.apiKey"},
		{envKey: "MAPS_BASEURL", want: "maps.baseUrl"},
		{envKey: "INVENTORY_HEADERSCANROWS", want: "inventory.headerScanRows"},
		{envKey: "SEARCH_PAGEDELAY", want: "search.pageDelay"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
