package cli

import "testing"

func TestRemoteStemNamesPartsAfterRef(t *testing.T) {
	cases := map[string]string{
		"s3://bucket/reports/q3-summary.pdf":   "q3-summary",
		"https://host/docs/report.pdf?sig=abc": "report",
		"http://host/doc.pdf#page=2":           "doc",
		"s3://bucket/plain.pdf":                "plain",
	}
	for ref, want := range cases {
		if got := remoteStem(ref); got != want {
			t.Errorf("remoteStem(%q) = %q, want %q", ref, got, want)
		}
	}
}
