package content_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/content"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

func testContent() *catalog.Content {
	return &catalog.Content{
		Practices: []model.Practice{
			{Name: "Box Breathing", Category: "breathing", Minutes: 4},
			{Name: "Body Scan", Category: "body-scan", Minutes: 15},
			{Name: "4-7-8 Breathing", Category: "breathing", Minutes: 3},
		},
		Greetings: map[string]map[string][]string{
			"general":  {"warm": {"Hi {name}!", "Hello again, {name}."}},
			"birthday": {"warm": {"Happy birthday, {name}!"}, "fun": {"Cake day, {name}!"}},
		},
	}
}

func names(ps []model.Practice) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestPracticesFilters(t *testing.T) {
	t.Parallel()
	c := testContent()

	if diff := cmp.Diff([]string{"Box Breathing", "4-7-8 Breathing"}, names(content.Practices(c, " Breathing ", 0))); diff != "" {
		t.Fatalf("category filter mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Box Breathing", "4-7-8 Breathing"}, names(content.Practices(c, "", 5))); diff != "" {
		t.Fatalf("minutes filter mismatch (-want +got):\n%s", diff)
	}
	if got := content.Practices(c, "yoga", 0); len(got) != 0 {
		t.Fatalf("expected no yoga practices, got %+v", got)
	}
	if diff := cmp.Diff([]string{"breathing", "body-scan"}, content.Categories(c)); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestGreetingVariantsWrap(t *testing.T) {
	t.Parallel()
	c := testContent()
	cases := []struct {
		variant int
		want    string
	}{
		{0, "Hi Asha!"},
		{1, "Hello again, Asha."},
		{2, "Hi Asha!"},
		{-1, "Hello again, Asha."},
	}
	for _, tc := range cases {
		if got := content.Greeting(c, "general", "warm", "Asha", tc.variant); got != tc.want {
			t.Fatalf("variant %d: expected %q, got %q", tc.variant, tc.want, got)
		}
	}
}

func TestGreetingFallbacks(t *testing.T) {
	t.Parallel()
	c := testContent()

	if got := content.Greeting(c, "Birthday", "FUN", "", 0); got != "Cake day, friend!" {
		t.Fatalf("expected default name, got %q", got)
	}
	if got := content.Greeting(c, "birthday", "formal", "Ravi", 0); got != "Happy birthday, Ravi!" {
		t.Fatalf("expected warm tone fallback, got %q", got)
	}
	if got := content.Greeting(c, "graduation", "fun", "Ravi", 0); got != "Hi Ravi!" {
		t.Fatalf("expected general occasion fallback, got %q", got)
	}
}

func TestEmbeddedGreetingsRenderEveryOccasion(t *testing.T) {
	t.Parallel()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	for _, occasion := range content.Occasions(cat.Content) {
		got := content.Greeting(cat.Content, occasion, "warm", "Meena", 0)
		if !strings.Contains(got, "Meena") {
			t.Fatalf("%s greeting missing name: %q", occasion, got)
		}
	}
}
