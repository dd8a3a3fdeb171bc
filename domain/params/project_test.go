package params_test

import (
	"reflect"
	"testing"

	"github.com/artpar/actionkit/domain/params"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		rootKey string
		filter  params.Filter
		want    map[string]any
	}{
		{
			name:    "scalar allow-list keeps only listed keys",
			payload: map[string]any{"a": 1, "b": 2, "c": 3},
			filter:  params.Filter{params.Key("a"), params.Key("c")},
			want:    map[string]any{"a": 1, "c": 3},
		},
		{
			name:    "empty filter passes through minus reserved keys",
			payload: map[string]any{"a": 1, "action": "create", "controller": "tasks", "format": "json", "commit": "Save"},
			want:    map[string]any{"a": 1},
		},
		{
			name:    "root key scopes projection",
			payload: map[string]any{"task": map[string]any{"title": "x", "evil": true}, "other": 1},
			rootKey: "task",
			filter:  params.Filter{params.Key("title")},
			want:    map[string]any{"title": "x"},
		},
		{
			name:    "root key missing yields empty",
			payload: map[string]any{"other": 1},
			rootKey: "task",
			filter:  params.Filter{params.Key("title")},
			want:    map[string]any{},
		},
		{
			name:    "root key not a map yields empty",
			payload: map[string]any{"task": "oops"},
			rootKey: "task",
			filter:  params.Filter{params.Key("title")},
			want:    map[string]any{},
		},
		{
			name:    "scalar rule rejects containers",
			payload: map[string]any{"a": map[string]any{"x": 1}, "b": []any{1}, "c": "ok"},
			filter:  params.Filter{params.Key("a"), params.Key("b"), params.Key("c")},
			want:    map[string]any{"c": "ok"},
		},
		{
			name:    "array rule keeps slices only",
			payload: map[string]any{"tags": []any{"a", "b"}, "notags": "x"},
			filter:  params.Filter{params.Each("tags"), params.Each("notags")},
			want:    map[string]any{"tags": []any{"a", "b"}},
		},
		{
			name: "nested rule recurses",
			payload: map[string]any{
				"address": map[string]any{"city": "Pune", "secret": "x"},
			},
			filter: params.Filter{params.Map("address", params.Key("city"))},
			want:   map[string]any{"address": map[string]any{"city": "Pune"}},
		},
		{
			name: "array of nested objects projects each element",
			payload: map[string]any{
				"items": []any{
					map[string]any{"name": "a", "secret": 1},
					map[string]any{"name": "b"},
					"not-a-map",
				},
			},
			filter: params.Filter{params.EachMap("items", params.Key("name"))},
			want: map[string]any{
				"items": []any{
					map[string]any{"name": "a"},
					map[string]any{"name": "b"},
				},
			},
		},
		{
			name:    "missing keys are skipped",
			payload: map[string]any{"a": 1},
			filter:  params.Filter{params.Key("a"), params.Key("z")},
			want:    map[string]any{"a": 1},
		},
		{
			name:    "reserved keys survive under a root key",
			payload: map[string]any{"task": map[string]any{"format": "special"}},
			rootKey: "task",
			want:    map[string]any{"format": "special"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := params.Project(tt.payload, tt.rootKey, tt.filter)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Project() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProject_DoesNotMutatePayload(t *testing.T) {
	payload := map[string]any{"a": 1, "action": "x"}
	params.Project(payload, "", nil)
	if _, ok := payload["action"]; !ok {
		t.Errorf("Project mutated the input payload")
	}
}

func TestReserved(t *testing.T) {
	for _, key := range []string{"action", "controller", "format", "commit"} {
		if !params.Reserved(key) {
			t.Errorf("%q should be reserved", key)
		}
	}
	if params.Reserved("title") {
		t.Errorf("title should not be reserved")
	}
}
