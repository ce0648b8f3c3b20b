package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.Hidden("_csrf", "token123"),
		render.StepHidden(2),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"_step":    "2",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "_step", Value: "2"},
		{Name: "existing", Value: "keep"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCarryValues_SkipsActiveStep(t *testing.T) {
	values := map[string]string{
		"username": "ada",
		"password": "secret1",
		"name":     "Ada",
		"email":    "",
		"website":  "w",
	}
	got := render.CarryValues(model.DefaultForm(), 1, values)
	want := []render.HiddenField{
		{Name: "username", Value: "ada"},
		{Name: "password", Value: "secret1"},
		{Name: "website", Value: "w"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("carried values mismatch (-want +got):\n%s", diff)
	}
}
