package report

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1555, "1.52 KB"},
		{1048576, "1 MB"},
		{1572864, "1.5 MB"},
		{300 * 1024, "300 KB"},
	}

	for _, test := range tests {
		result := FormatBytes(test.input)
		if result != test.expected {
			t.Errorf("FormatBytes(%d) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestFormatBytesCapsAtMB(t *testing.T) {
	// Values beyond 1024 MB still use the MB unit
	result := FormatBytes(2 * 1024 * 1024 * 1024)
	if result != "2048 MB" {
		t.Errorf("FormatBytes(2GB) = %q, expected %q", result, "2048 MB")
	}
}

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score    int
		grade    Grade
		category Status
	}{
		{100, GradeA, StatusGood},
		{90, GradeA, StatusGood},
		{89, GradeB, StatusGood},
		{75, GradeB, StatusGood},
		{74, GradeC, StatusWarning},
		{60, GradeC, StatusWarning},
		{59, GradeD, StatusWarning},
		{40, GradeD, StatusWarning},
		{39, GradeF, StatusDanger},
		{0, GradeF, StatusDanger},
	}

	for _, test := range tests {
		grade, category := GradeForScore(test.score)
		if grade != test.grade {
			t.Errorf("GradeForScore(%d) grade = %s, expected %s", test.score, grade, test.grade)
		}
		if category != test.category {
			t.Errorf("GradeForScore(%d) category = %s, expected %s", test.score, category, test.category)
		}
	}
}

func TestSortFindings(t *testing.T) {
	findings := []Finding{
		{Severity: SeverityInfo, Title: "first info"},
		{Severity: SeverityWarning, Title: "first warning"},
		{Severity: SeverityError, Title: "first error"},
		{Severity: SeverityWarning, Title: "second warning"},
		{Severity: SeverityError, Title: "second error"},
	}

	SortFindings(findings)

	expected := []string{"first error", "second error", "first warning", "second warning", "first info"}
	for i, title := range expected {
		if findings[i].Title != title {
			t.Errorf("findings[%d].Title = %q, expected %q", i, findings[i].Title, title)
		}
	}
}
